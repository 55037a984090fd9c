package cart

import (
	"github.com/caribvital/seamoss-backend/internal/catalog"
)

// Action is the closed set of cart transitions. Implementations are the only
// way to change a State.
type Action interface {
	isCartAction()
}

// AddItem merges a product into the cart, clamping the line quantity and
// refreshing the stored price from the catalog entry.
type AddItem struct {
	Product  catalog.Product
	Quantity int
}

// RemoveItem drops the line for the given product.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets a line's quantity verbatim. Callers own range checks;
// the HTTP layer clamps to [1,10] before dispatching.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// RestoreCart replaces the cart wholesale from a stored snapshot without
// opening the drawer.
type RestoreCart struct {
	Items []Item
}

// ToggleCart flips the drawer open/closed.
type ToggleCart struct{}

// ClearCart empties the cart.
type ClearCart struct{}

func (AddItem) isCartAction()        {}
func (RemoveItem) isCartAction()     {}
func (UpdateQuantity) isCartAction() {}
func (RestoreCart) isCartAction()    {}
func (ToggleCart) isCartAction()     {}
func (ClearCart) isCartAction()      {}
