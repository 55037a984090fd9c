package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderItemSnapshot is one line of an order as captured at recording time.
// Price is in major units (dollars).
type OrderItemSnapshot struct {
	ProductID string          `json:"product_id"`
	PriceID   string          `json:"price_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderItemList is the JSON column holding an order's line items.
type OrderItemList []OrderItemSnapshot

// Value marshals the list into a JSON column value.
func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		l = OrderItemList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("order items: marshal: %w", err)
	}
	return string(b), nil
}

// Scan decodes a JSON column value.
func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = OrderItemList{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*l = OrderItemList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}
