package cart

import (
	"github.com/shopspring/decimal"
)

// MaxQuantityPerItem caps how many units of one product a cart can hold.
const MaxQuantityPerItem = 10

// Item is one cart line. Price is in major units and mirrors the catalog
// price at the time the line was last touched.
type Item struct {
	ProductID string          `json:"productId"`
	PriceID   string          `json:"priceId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// State is the full cart as the storefront sees it. IsOpen tracks the cart
// drawer so a restored snapshot doesn't pop it open.
type State struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// Clone returns a deep copy so Apply never aliases caller state.
func (s State) Clone() State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsOpen: s.IsOpen}
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}
