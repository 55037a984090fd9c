package customers

import (
	"github.com/caribvital/seamoss-backend/pkg/types"
)

// Info is the checkout contact form payload.
type Info struct {
	FullName string                `json:"fullName" validate:"required,min=2"`
	Email    string                `json:"email" validate:"required"`
	Phone    *string               `json:"phone,omitempty"`
	Address  types.ShippingAddress `json:"address"`
}

// Result reports the processor customer backing a checkout.
type Result struct {
	CustomerID string `json:"customerId"`
	IsExisting bool   `json:"isExisting"`
}
