package cart

import (
	"context"
	"errors"

	"github.com/caribvital/seamoss-backend/internal/catalog"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// View is the priced cart returned to callers after every dispatch.
type View struct {
	Items     []Item `json:"items"`
	IsOpen    bool   `json:"isOpen"`
	ItemCount int    `json:"itemCount"`
	Totals    Totals `json:"totals"`
}

// Catalog is the product lookup surface the cart needs.
type Catalog interface {
	Get(id string) (catalog.Product, bool)
}

// Service owns the load → apply → persist dispatch loop.
type Service struct {
	snapshots *SnapshotStore
	catalog   Catalog
	logg      *logger.Logger
}

// NewService wires the dispatch service.
func NewService(snapshots *SnapshotStore, cat Catalog, logg *logger.Logger) (*Service, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot store is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{snapshots: snapshots, catalog: cat, logg: logg}, nil
}

// Get returns the current priced cart for a session.
func (s *Service) Get(ctx context.Context, session string) (View, error) {
	if session == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	state, err := s.snapshots.Load(ctx, session)
	if err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return buildView(state), nil
}

// Dispatch applies one action to the session's cart and persists the result.
// Reads and writes race across tabs; the last writer wins.
func (s *Service) Dispatch(ctx context.Context, session string, action Action) (View, error) {
	if session == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	if action == nil {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart action is required")
	}

	state, err := s.snapshots.Load(ctx, session)
	if err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	next := Apply(state, action)

	if err := s.snapshots.Save(ctx, session, next); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}

	return buildView(next), nil
}

// AddProduct resolves the product id against the catalog and dispatches an add.
func (s *Service) AddProduct(ctx context.Context, session, productID string, quantity int) (View, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown product").
			WithDetails(map[string]any{"product_id": productID})
	}
	return s.Dispatch(ctx, session, AddItem{Product: product, Quantity: quantity})
}

// Clear empties the session's cart.
func (s *Service) Clear(ctx context.Context, session string) (View, error) {
	return s.Dispatch(ctx, session, ClearCart{})
}

// Snapshot exposes the raw state for checkout/order recording.
func (s *Service) Snapshot(ctx context.Context, session string) (State, error) {
	if session == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	state, err := s.snapshots.Load(ctx, session)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return state, nil
}

// DropSnapshot removes the stored cart once an order has been recorded.
func (s *Service) DropSnapshot(ctx context.Context, session string) error {
	if err := s.snapshots.Clear(ctx, session); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func buildView(state State) View {
	items := make([]Item, len(state.Items))
	copy(items, state.Items)
	return View{
		Items:     items,
		IsOpen:    state.IsOpen,
		ItemCount: ItemCount(state),
		Totals:    ComputeTotals(state),
	}
}
