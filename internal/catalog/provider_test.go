package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProviderDefaultList(t *testing.T) {
	t.Parallel()

	p, err := NewProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := p.List("")
	if len(all) == 0 {
		t.Fatal("expected packaged products")
	}
	for _, cat := range validCategories {
		if len(p.List(cat)) == 0 {
			t.Fatalf("expected at least one product in category %s", cat)
		}
	}

	prod, ok := p.Get("gold-gel-16")
	if !ok {
		t.Fatal("expected gold-gel-16 in the catalog")
	}
	if !prod.Price.Equal(decimal.RequireFromString("24.99")) {
		t.Fatalf("unexpected price: %s", prod.Price)
	}
}

func TestNewProviderWithRejectsBadInput(t *testing.T) {
	t.Parallel()

	base := Product{ID: "a", PriceID: "price_a", Category: CategoryGel, Price: decimal.NewFromInt(1)}

	cases := []struct {
		name     string
		products []Product
	}{
		{"empty id", []Product{{PriceID: "price_a", Category: CategoryGel}}},
		{"missing price id", []Product{{ID: "a", Category: CategoryGel}}},
		{"invalid category", []Product{{ID: "a", PriceID: "price_a", Category: "snacks"}}},
		{"duplicate id", []Product{base, base}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewProviderWith(tc.products); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	got, err := ParseCategory("gel")
	if err != nil || got != CategoryGel {
		t.Fatalf("expected gel, got %v (%v)", got, err)
	}
	if _, err := ParseCategory("snacks"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestProviderListReturnsCopy(t *testing.T) {
	t.Parallel()

	p, err := NewProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := p.List("")
	all[0].ID = "mutated"

	fresh := p.List("")
	if fresh[0].ID == "mutated" {
		t.Fatal("List must not expose internal slice")
	}
}
