package models

import (
	"time"
)

// InventoryItem tracks the stock level per product.
type InventoryItem struct {
	ProductID string    `gorm:"column:product_id;primaryKey"`
	Level     int       `gorm:"column:level;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table regardless of gorm pluralization settings.
func (InventoryItem) TableName() string {
	return "inventory_items"
}
