package models

import (
	"time"

	"github.com/caribvital/seamoss-backend/pkg/enums"
)

// InventoryAdjustment is one history row for a level change.
type InventoryAdjustment struct {
	ID            string                    `gorm:"column:id;primaryKey"`
	ProductID     string                    `gorm:"column:product_id;not null"`
	PreviousLevel int                       `gorm:"column:previous_level;not null"`
	NewLevel      int                       `gorm:"column:new_level;not null"`
	ChangeType    enums.InventoryChangeType `gorm:"column:change_type;not null"`
	ChangeReason  *string                   `gorm:"column:change_reason"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table regardless of gorm pluralization settings.
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}
