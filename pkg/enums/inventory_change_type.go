package enums

import "fmt"

// InventoryChangeType classifies an inventory level adjustment.
type InventoryChangeType string

const (
	InventoryChangeRestock    InventoryChangeType = "restock"
	InventoryChangeSale       InventoryChangeType = "sale"
	InventoryChangeAdjustment InventoryChangeType = "adjustment"
)

var validInventoryChangeTypes = []InventoryChangeType{
	InventoryChangeRestock,
	InventoryChangeSale,
	InventoryChangeAdjustment,
}

// String implements fmt.Stringer.
func (i InventoryChangeType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InventoryChangeType.
func (i InventoryChangeType) IsValid() bool {
	for _, candidate := range validInventoryChangeTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInventoryChangeType converts raw input into an InventoryChangeType.
func ParseInventoryChangeType(value string) (InventoryChangeType, error) {
	for _, candidate := range validInventoryChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory change type %q", value)
}
