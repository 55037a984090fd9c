package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
)

// LookupItem is one reconstructed line of a public order lookup.
type LookupItem struct {
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// LookupResult mirrors the intent-backed order view. Because it reads the
// metadata written at intent creation, it can disagree with the persisted
// order row recorded at confirmation; the row stays the source of truth for
// the authenticated history.
type LookupResult struct {
	ID       string                  `json:"id"`
	Amount   int64                   `json:"amount"`
	Status   string                  `json:"status"`
	Created  int64                   `json:"created"`
	Items    []LookupItem            `json:"items"`
	Shipping *stripe.ShippingDetails `json:"shipping,omitempty"`
}

type lookupMetadataItem struct {
	PriceID  string          `json:"price_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LookupService serves public order lookups straight from the processor.
type LookupService struct {
	stripe StripeIntentClient
}

// NewLookupService wires the lookup service.
func NewLookupService(stripeClient StripeIntentClient) (*LookupService, error) {
	if stripeClient == nil {
		return nil, errors.New("stripe client is required")
	}
	return &LookupService{stripe: stripeClient}, nil
}

// Lookup fetches the intent and rebuilds line items from its metadata.
func (s *LookupService) Lookup(ctx context.Context, orderID string) (*LookupResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Order ID is required")
	}

	params := &stripe.PaymentIntentParams{}
	params.AddExpand("customer")
	intent, err := s.stripe.RetrievePaymentIntent(ctx, orderID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Failed to lookup order")
	}

	var metaItems []lookupMetadataItem
	if raw := intent.Metadata["order_items"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &metaItems); err != nil {
			metaItems = nil
		}
	}

	items := make([]LookupItem, 0, len(metaItems))
	for _, mi := range metaItems {
		cents := mi.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart() * int64(mi.Quantity)
		items = append(items, LookupItem{
			Quantity:    mi.Quantity,
			Amount:      cents,
			Description: fmt.Sprintf("Order item (%s)", mi.PriceID),
		})
	}

	return &LookupResult{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Status:   string(intent.Status),
		Created:  intent.Created,
		Items:    items,
		Shipping: intent.Shipping,
	}, nil
}
