package inventory

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductFieldsMarshalPriceWithTwoDigits(t *testing.T) {
	fields := ProductFields{
		Name:     "Rice 5kg",
		Price:    decimal.RequireFromString("250"),
		Quantity: 10,
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	require.Contains(t, string(data), `"price":"250.00"`)
}

func TestProductMarshalPriceWithTwoDigits(t *testing.T) {
	p := Product{ID: 1, Name: "Sugar 1kg", Price: decimal.RequireFromString("85.5"), Quantity: 3}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(data), `"price":"85.50"`)

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.Price.Equal(p.Price))
}
