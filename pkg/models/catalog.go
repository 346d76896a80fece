package models

import "time"

// Catalog entry categories. Emotions use the affect categories; activities
// use free-form grouping labels (e.g. "physical", "social").
const (
	CategoryPositive = "positive"
	CategoryNegative = "negative"
	CategoryNeutral  = "neutral"
)

// CatalogEntry is a labeled reference-catalog row. Emotions and activities
// share this shape: a fixed vocabulary users select from, seeded once and
// never created or deleted through normal flows. Icon is only populated
// for activities.
type CatalogEntry struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	Color     string    `db:"color" json:"color"`
	Icon      *string   `db:"icon" json:"icon,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
