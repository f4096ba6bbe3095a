package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Rice 5kg", Price: decimal.RequireFromString("250.00"), Quantity: 10, Category: strPtr("Grains")},
		{ID: 2, Name: "Brown Rice 2kg", Price: decimal.RequireFromString("180.00"), Quantity: 4, Category: strPtr("Grains")},
		{ID: 3, Name: "Sugar 1kg", Price: decimal.RequireFromString("85.00"), Quantity: 3, Category: strPtr("Baking")},
		{ID: 4, Name: "Bleach", Price: decimal.RequireFromString("60.00"), Quantity: 2},
	}
}

func TestReduceProductsLoadedDerivesCategories(t *testing.T) {
	s := Reduce(NewState(), ProductsLoaded{Products: sampleProducts()})

	// Distinct, non-empty, first-seen order; the uncategorized record is excluded.
	require.Equal(t, []string{"Grains", "Baking"}, s.Categories)
	require.Len(t, s.Filtered, 4)
}

func TestReduceEmptyFiltersReturnEverythingInOrder(t *testing.T) {
	products := sampleProducts()
	s := Reduce(NewState(), ProductsLoaded{Products: products})

	require.Equal(t, products, s.Filtered)
}

func TestReduceSearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := Reduce(NewState(), ProductsLoaded{Products: sampleProducts()})

	s = Reduce(s, SearchChanged{Term: "RICE"})
	require.Len(t, s.Filtered, 2)
	require.Equal(t, "Rice 5kg", s.Filtered[0].Name)
	require.Equal(t, "Brown Rice 2kg", s.Filtered[1].Name)

	s = Reduce(s, SearchChanged{Term: "quinoa"})
	require.Empty(t, s.Filtered)

	s = Reduce(s, SearchChanged{Term: ""})
	require.Len(t, s.Filtered, 4)
}

func TestReduceCategoryFilterMatchesExactly(t *testing.T) {
	s := Reduce(NewState(), ProductsLoaded{Products: sampleProducts()})

	s = Reduce(s, CategoryChanged{Category: "Grains"})
	require.Len(t, s.Filtered, 2)

	// Both filters combine with AND.
	s = Reduce(s, SearchChanged{Term: "brown"})
	require.Len(t, s.Filtered, 1)
	require.Equal(t, int64(2), s.Filtered[0].ID)

	// An uncategorized record never matches a category filter.
	s = Reduce(s, SearchChanged{Term: ""})
	s = Reduce(s, CategoryChanged{Category: "Cleaning"})
	require.Empty(t, s.Filtered)
}

func TestReduceFieldChanged(t *testing.T) {
	s := Reduce(NewState(), FieldChanged{Field: "product_name", Value: "Rice 5kg"})
	s = Reduce(s, FieldChanged{Field: "price", Value: "250.00"})
	s = Reduce(s, FieldChanged{Field: "quantity", Value: "10"})
	s = Reduce(s, FieldChanged{Field: "category", Value: "Grains"})

	require.Equal(t, "Rice 5kg", s.Form.Name)
	require.Equal(t, "250.00", s.Form.Price)
	require.Equal(t, "10", s.Form.Quantity)
	require.Equal(t, "Grains", s.Form.Category)
}

func TestReduceEditRequestedPrefillsForm(t *testing.T) {
	s := NewState()
	s.Errors = map[string][]string{"price": {"stale error"}}

	product := sampleProducts()[0]
	s = Reduce(s, EditRequested{Product: product})

	require.NotNil(t, s.EditingID)
	require.Equal(t, int64(1), *s.EditingID)
	require.Equal(t, "Rice 5kg", s.Form.Name)
	require.Equal(t, "250.00", s.Form.Price)
	require.Equal(t, "10", s.Form.Quantity)
	require.Equal(t, "Grains", s.Form.Category)
	require.Empty(t, s.Errors)
}

func TestReduceEditCancelledResetsForm(t *testing.T) {
	s := Reduce(NewState(), EditRequested{Product: sampleProducts()[0]})
	s = Reduce(s, EditCancelled{})

	require.Nil(t, s.EditingID)
	require.Equal(t, FormData{}, s.Form)
	require.Empty(t, s.Errors)
}

func TestReduceSubmitFailedAttachesErrors(t *testing.T) {
	s := Reduce(NewState(), EditRequested{Product: sampleProducts()[0]})
	s = Reduce(s, SubmitFailed{Errors: map[string][]string{"price": {"The price field is required."}}})

	// Errors attach without losing the editing state or form values.
	require.NotNil(t, s.EditingID)
	require.Equal(t, "Rice 5kg", s.Form.Name)
	require.Equal(t, "The price field is required.", s.Errors["price"][0])

	s = Reduce(s, SubmitSucceeded{})
	require.Nil(t, s.EditingID)
	require.Equal(t, FormData{}, s.Form)
	require.Empty(t, s.Errors)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	original := Reduce(NewState(), ProductsLoaded{Products: sampleProducts()})
	before := len(original.Filtered)

	_ = Reduce(original, SearchChanged{Term: "rice"})

	require.Len(t, original.Filtered, before)
	require.Equal(t, "", original.SearchTerm)
}
