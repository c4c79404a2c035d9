package models

import "time"

// CategoryKind mirrors the category kind column.
type CategoryKind string

const (
	CategoryPurchase CategoryKind = "purchase"
	CategoryIncome   CategoryKind = "income"
)

// Category is the categories table row. Purchase and income categories share
// the table, discriminated by kind.
type Category struct {
	CategoryID  string       `db:"category_id"`
	Kind        CategoryKind `db:"kind"`
	Name        string       `db:"name"`
	Description string       `db:"description"`
	Icon        string       `db:"icon"`
	Color       string       `db:"color"`
	IsActive    bool         `db:"is_active"`
	CreatedAt   time.Time    `db:"created_at"`
}
