package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redispkg "github.com/caribvital/seamoss-backend/pkg/redis"
)

// snapshotStore is the redis surface the cart needs.
type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(session string) string
}

// storedItem is the sanitized wire form a snapshot round-trips through.
// Anything else a client may have stuffed into storage is dropped on load.
type storedItem struct {
	ProductID string          `json:"productId"`
	PriceID   string          `json:"priceId"`
	Quantity  int             `json:"quantity"`
	Price     json.RawMessage `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
}

type storedCart struct {
	Items  []storedItem `json:"items"`
	IsOpen bool         `json:"isOpen,omitempty"`
}

// SnapshotStore persists cart state to redis keyed by cart session.
type SnapshotStore struct {
	store snapshotStore
	ttl   time.Duration
}

// NewSnapshotStore wires the store. TTL <= 0 means snapshots never expire.
func NewSnapshotStore(store snapshotStore, ttl time.Duration) (*SnapshotStore, error) {
	if store == nil {
		return nil, errors.New("redis store is required")
	}
	return &SnapshotStore{store: store, ttl: ttl}, nil
}

// Load reads and sanitizes the snapshot for a session. A missing key returns
// an empty cart, not an error.
func (s *SnapshotStore) Load(ctx context.Context, session string) (State, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(session))
	if err != nil {
		if errors.Is(err, redispkg.ErrNotFound) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("loading cart snapshot: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// a corrupt snapshot is treated as absent rather than wedging the cart
		return State{}, nil
	}

	items := make([]Item, 0, len(stored.Items))
	for _, si := range stored.Items {
		if si.ProductID == "" || si.Quantity < 1 {
			continue
		}
		item := Item{
			ProductID: si.ProductID,
			PriceID:   si.PriceID,
			Quantity:  si.Quantity,
			Name:      si.Name,
			Image:     si.Image,
		}
		if len(si.Price) > 0 {
			if err := item.Price.UnmarshalJSON(si.Price); err != nil {
				continue
			}
		}
		items = append(items, item)
	}

	return State{Items: items, IsOpen: stored.IsOpen}, nil
}

// Save writes the snapshot for a session. Last writer wins across tabs.
func (s *SnapshotStore) Save(ctx context.Context, session string, state State) error {
	stored := storedCart{Items: make([]storedItem, 0, len(state.Items)), IsOpen: state.IsOpen}
	for _, item := range state.Items {
		price, err := item.Price.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding cart price: %w", err)
		}
		stored.Items = append(stored.Items, storedItem{
			ProductID: item.ProductID,
			PriceID:   item.PriceID,
			Quantity:  item.Quantity,
			Price:     price,
			Name:      item.Name,
			Image:     item.Image,
		})
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.store.CartKey(session), payload, s.ttl); err != nil {
		return fmt.Errorf("saving cart snapshot: %w", err)
	}
	return nil
}

// Clear drops the snapshot for a session.
func (s *SnapshotStore) Clear(ctx context.Context, session string) error {
	if err := s.store.Del(ctx, s.store.CartKey(session)); err != nil {
		return fmt.Errorf("clearing cart snapshot: %w", err)
	}
	return nil
}
