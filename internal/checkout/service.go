package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// Item is one checkout line as submitted by the storefront. Price is in
// major units.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	PriceID  string          `json:"priceId"`
	Quantity int             `json:"quantity"`
}

// Request carries everything needed to open a payment intent.
type Request struct {
	Amount     int64  `json:"amount"`
	Items      []Item `json:"items"`
	CustomerID string `json:"customerId,omitempty"`

	// identity and shipping ride on headers, not the body
	UserID             string `json:"-"`
	CartSession        string `json:"-"`
	ShippingAddressRaw string `json:"-"`
}

// Result is the client-facing outcome of intent creation.
type Result struct {
	ClientSecret string `json:"clientSecret"`
}

type metadataItem struct {
	PriceID  string          `json:"price_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
}

// intentCache is the redis surface the dedupe layer needs.
type intentCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	IntentCacheKey(session string, amountCents int64) string
}

// Service opens payment intents with a recomputed total and metadata
// snapshot, deduping per (cart session, total).
type Service struct {
	stripe   StripeIntentClient
	cache    intentCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService wires the checkout service.
func NewService(stripeClient StripeIntentClient, cache intentCache, cacheTTL time.Duration, logg *logger.Logger) (*Service, error) {
	if stripeClient == nil {
		return nil, errors.New("stripe client is required")
	}
	if cache == nil {
		return nil, errors.New("intent cache is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{stripe: stripeClient, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

// CreatePaymentIntent validates the request, recomputes the total server-side
// and opens (or reuses) a payment intent for it.
func (s *Service) CreatePaymentIntent(ctx context.Context, req Request) (*Result, error) {
	if req.Amount < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid amount")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid items")
	}

	// the caller's amount is advisory; the charge is always the recomputed sum
	totalCents := int64(0)
	for _, item := range req.Items {
		lineCents := item.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart() * int64(item.Quantity)
		totalCents += lineCents
	}
	if totalCents < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid amount")
	}
	if totalCents != req.Amount {
		wctx := s.logg.WithFields(ctx, map[string]any{
			"claimed_amount":    req.Amount,
			"recomputed_amount": totalCents,
		})
		s.logg.Warn(wctx, "checkout amount mismatch, using recomputed total")
	}

	if req.CartSession != "" {
		cacheKey := s.cache.IntentCacheKey(req.CartSession, totalCents)
		if secret, err := s.cache.Get(ctx, cacheKey); err == nil && secret != "" {
			return &Result{ClientSecret: secret}, nil
		}
	}

	params, err := s.buildParams(req, totalCents)
	if err != nil {
		return nil, err
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating payment intent")
	}

	if req.CartSession != "" {
		cacheKey := s.cache.IntentCacheKey(req.CartSession, totalCents)
		if err := s.cache.Set(ctx, cacheKey, intent.ClientSecret, s.cacheTTL); err != nil {
			ectx := s.logg.WithField(ctx, "error", err.Error())
			s.logg.Warn(ectx, "caching payment intent secret failed")
		}
	}

	return &Result{ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) buildParams(req Request, totalCents int64) (*stripe.PaymentIntentParams, error) {
	items := make([]metadataItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, metadataItem{
			PriceID:  item.PriceID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Name:     item.Name,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order items")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(totalCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}

	params.AddMetadata("user_id", req.UserID)
	params.AddMetadata("order_items", string(itemsJSON))
	params.AddMetadata("shipping_address", req.ShippingAddressRaw)
	params.AddMetadata("createdAt", time.Now().UTC().Format(time.RFC3339))
	params.AddMetadata("status", "pending")

	return params, nil
}
