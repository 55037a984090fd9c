package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caribvital/seamoss-backend/pkg/enums"
	"github.com/caribvital/seamoss-backend/pkg/types"
)

// Order is one recorded purchase. The primary key is the payment intent id,
// which makes recording idempotent at the store boundary.
type Order struct {
	ID                string                  `gorm:"column:id;primaryKey"`
	UserID            string                  `gorm:"column:user_id;not null"`
	TotalAmount       decimal.Decimal         `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items             types.OrderItemList     `gorm:"column:items;type:jsonb"`
	ShippingAddress   types.ShippingAddress   `gorm:"column:shipping_address;type:jsonb"`
	Status            enums.OrderStatus       `gorm:"column:status;not null;default:'pending'"`
	FulfillmentStatus enums.FulfillmentStatus `gorm:"column:fulfillment_status;not null;default:'unfulfilled'"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table regardless of gorm pluralization settings.
func (Order) TableName() string {
	return "orders"
}
