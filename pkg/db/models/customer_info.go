package models

import (
	"time"

	"github.com/caribvital/seamoss-backend/pkg/types"
)

// CustomerInfo holds the checkout contact/shipping details per session user.
type CustomerInfo struct {
	UserID    string                `gorm:"column:user_id;primaryKey"`
	FullName  string                `gorm:"column:full_name;not null"`
	Email     string                `gorm:"column:email;not null"`
	Phone     *string               `gorm:"column:phone"`
	Address   types.ShippingAddress `gorm:"column:address;type:jsonb"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table regardless of gorm pluralization settings.
func (CustomerInfo) TableName() string {
	return "customer_info"
}
