package enums

// FulfillmentStatus tracks whether an order has shipped.
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentStatusFulfilled   FulfillmentStatus = "fulfilled"
)

var validFulfillmentStatuses = []FulfillmentStatus{
	FulfillmentStatusUnfulfilled,
	FulfillmentStatusFulfilled,
}

// String implements fmt.Stringer.
func (f FulfillmentStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentStatus.
func (f FulfillmentStatus) IsValid() bool {
	for _, candidate := range validFulfillmentStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// Toggle returns the opposite fulfillment state.
func (f FulfillmentStatus) Toggle() FulfillmentStatus {
	if f == FulfillmentStatusFulfilled {
		return FulfillmentStatusUnfulfilled
	}
	return FulfillmentStatusFulfilled
}
