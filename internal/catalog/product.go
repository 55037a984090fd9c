package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category groups storefront products.
type Category string

const (
	CategoryBaskets       Category = "baskets"
	CategoryParaphernalia Category = "paraphernalia"
	CategoryDried         Category = "dried"
	CategoryGel           Category = "gel"
)

var validCategories = []Category{
	CategoryBaskets,
	CategoryParaphernalia,
	CategoryDried,
	CategoryGel,
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}

// Dimensions carries the sparse physical measurements shown on product pages.
type Dimensions struct {
	Length   *float64 `json:"length,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Depth    *float64 `json:"depth,omitempty"`
	Diameter *float64 `json:"diameter,omitempty"`
	Size     *string  `json:"size,omitempty"`
}

// Product is one storefront item. The list is immutable at runtime; price
// edits ship as code changes.
type Product struct {
	ID          string          `json:"id"`
	PriceID     string          `json:"priceId"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Dimensions  Dimensions      `json:"dimensions"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	InStock     bool            `json:"inStock"`
}
