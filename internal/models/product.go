package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single inventory record.
// Fields are tagged for both DB scanning and JSON serialization.
// A non-nil DeletedAt marks the record as logically deleted; deleted rows
// keep their id so an id is never handed out twice.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"product_name" json:"product_name"`
	Description *string         `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Category    *string         `db:"category" json:"category"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at" json:"-"`
}

// IsDeleted reports whether the record is soft-deleted.
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// MarshalJSON emits price with exactly two fractional digits. Decimal's own
// marshaling renders a stored 250.00 as "250", which breaks the wire contract.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{alias(p), p.Price.StringFixed(2)})
}
