package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Provider serves the static product list.
type Provider struct {
	products []Product
	byID     map[string]Product
}

// NewProvider builds a provider from the packaged product list.
func NewProvider() (*Provider, error) {
	return NewProviderWith(defaultProducts())
}

// NewProviderWith builds a provider from an explicit product list.
func NewProviderWith(products []Product) (*Provider, error) {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product with empty id")
		}
		if p.PriceID == "" {
			return nil, fmt.Errorf("product %s has no price id", p.ID)
		}
		if !p.Category.IsValid() {
			return nil, fmt.Errorf("product %s has invalid category %q", p.ID, p.Category)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		byID[p.ID] = p
	}
	return &Provider{products: products, byID: byID}, nil
}

// List returns all products, optionally filtered by category.
func (p *Provider) List(category Category) []Product {
	if category == "" {
		out := make([]Product, len(p.products))
		copy(out, p.products)
		return out
	}
	var out []Product
	for _, prod := range p.products {
		if prod.Category == category {
			out = append(out, prod)
		}
	}
	return out
}

// Get returns the product with the given id.
func (p *Provider) Get(id string) (Product, bool) {
	prod, ok := p.byID[id]
	return prod, ok
}

func dollars(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func defaultProducts() []Product {
	return []Product{
		{
			ID:          "gold-gel-16",
			PriceID:     "price_gold_gel_16",
			Name:        "Gold Sea Moss Gel 16oz",
			Category:    CategoryGel,
			Price:       dollars("24.99"),
			Dimensions:  Dimensions{Size: strPtr("16oz")},
			Description: "Wildcrafted gold sea moss gel, small batch.",
			Images:      []string{"/images/products/gold-gel-16.jpg"},
			InStock:     true,
		},
		{
			ID:          "gold-gel-32",
			PriceID:     "price_gold_gel_32",
			Name:        "Gold Sea Moss Gel 32oz",
			Category:    CategoryGel,
			Price:       dollars("44.99"),
			Dimensions:  Dimensions{Size: strPtr("32oz")},
			Description: "Wildcrafted gold sea moss gel, family size.",
			Images:      []string{"/images/products/gold-gel-32.jpg"},
			InStock:     true,
		},
		{
			ID:          "purple-gel-16",
			PriceID:     "price_purple_gel_16",
			Name:        "Purple Sea Moss Gel 16oz",
			Category:    CategoryGel,
			Price:       dollars("29.99"),
			Dimensions:  Dimensions{Size: strPtr("16oz")},
			Description: "Purple sea moss gel rich in anthocyanins.",
			Images:      []string{"/images/products/purple-gel-16.jpg"},
			InStock:     true,
		},
		{
			ID:          "dried-gold-8",
			PriceID:     "price_dried_gold_8",
			Name:        "Dried Gold Sea Moss 8oz",
			Category:    CategoryDried,
			Price:       dollars("34.99"),
			Dimensions:  Dimensions{Size: strPtr("8oz")},
			Description: "Sun-dried St. Lucian gold sea moss.",
			Images:      []string{"/images/products/dried-gold-8.jpg"},
			InStock:     true,
		},
		{
			ID:          "dried-purple-8",
			PriceID:     "price_dried_purple_8",
			Name:        "Dried Purple Sea Moss 8oz",
			Category:    CategoryDried,
			Price:       dollars("39.99"),
			Dimensions:  Dimensions{Size: strPtr("8oz")},
			Description: "Sun-dried purple sea moss, limited harvest.",
			Images:      []string{"/images/products/dried-purple-8.jpg"},
			InStock:     true,
		},
		{
			ID:          "woven-basket-md",
			PriceID:     "price_woven_basket_md",
			Name:        "Handwoven Palm Basket",
			Category:    CategoryBaskets,
			Price:       dollars("54.99"),
			Dimensions:  Dimensions{Diameter: floatPtr(12), Depth: floatPtr(8)},
			Description: "Handwoven palm basket from local artisans.",
			Images:      []string{"/images/products/woven-basket-md.jpg"},
			InStock:     true,
		},
		{
			ID:          "storage-basket-lg",
			PriceID:     "price_storage_basket_lg",
			Name:        "Large Storage Basket",
			Category:    CategoryBaskets,
			Price:       dollars("74.99"),
			Dimensions:  Dimensions{Length: floatPtr(18), Width: floatPtr(14), Depth: floatPtr(10)},
			Description: "Large lidded storage basket, natural fiber.",
			Images:      []string{"/images/products/storage-basket-lg.jpg"},
			InStock:     false,
		},
		{
			ID:          "gel-spoon",
			PriceID:     "price_gel_spoon",
			Name:        "Bamboo Gel Spoon",
			Category:    CategoryParaphernalia,
			Price:       dollars("7.99"),
			Dimensions:  Dimensions{Length: floatPtr(6.5)},
			Description: "Bamboo spoon sized for gel jars.",
			Images:      []string{"/images/products/gel-spoon.jpg"},
			InStock:     true,
		},
		{
			ID:          "mason-jar-16",
			PriceID:     "price_mason_jar_16",
			Name:        "Glass Mason Jar 16oz",
			Category:    CategoryParaphernalia,
			Price:       dollars("9.99"),
			Dimensions:  Dimensions{Size: strPtr("16oz")},
			Description: "Replacement glass jar with sealing lid.",
			Images:      []string{"/images/products/mason-jar-16.jpg"},
			InStock:     true,
		},
	}
}
