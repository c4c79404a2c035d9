package domain

import "time"

// CategoryKind separates the purchase and income category namespaces.
type CategoryKind string

const (
	CategoryPurchase CategoryKind = "purchase"
	CategoryIncome   CategoryKind = "income"
)

// IsValid reports whether the kind is known.
func (k CategoryKind) IsValid() bool {
	return k == CategoryPurchase || k == CategoryIncome
}

// Category labels a purchase or an income record. The two kinds are
// independent namespaces: a purchase may only reference a purchase category.
type Category struct {
	CategoryID  string       `json:"categoryID"`
	Kind        CategoryKind `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ActiveCategories returns the subset of categories still in use.
func ActiveCategories(categories []Category) []Category {
	out := make([]Category, 0)
	for _, c := range categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
