package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	"github.com/caribvital/seamoss-backend/internal/cart"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	"github.com/caribvital/seamoss-backend/pkg/types"
)

// Outcome is the terminal (or near-terminal) state of a confirmation check.
type Outcome string

const (
	// OutcomeRedirectHome means no client secret arrived; the client should
	// return to the landing page.
	OutcomeRedirectHome Outcome = "redirect_home"
	// OutcomeRecorded means payment succeeded and the order is on file.
	OutcomeRecorded Outcome = "recorded"
	// OutcomeUnrecorded means payment succeeded but the order insert failed.
	// Money moved without a record; this is the manual-support path and the
	// cart is deliberately left intact.
	OutcomeUnrecorded Outcome = "unrecorded"
	// OutcomeProcessing means the payment is still settling; the user
	// refreshes, nothing polls.
	OutcomeProcessing Outcome = "processing"
	// OutcomeTryAgain means the payment attempt failed and can be retried.
	OutcomeTryAgain Outcome = "try_again"
	// OutcomeFailed covers every other intent status.
	OutcomeFailed Outcome = "failed"
)

// ConfirmResult is what the confirmation page renders from.
type ConfirmResult struct {
	Outcome Outcome `json:"outcome"`
	OrderID string  `json:"orderId,omitempty"`
	Message string  `json:"message"`
}

// cartReader is the slice of the cart service the reconciler needs.
type cartReader interface {
	Snapshot(ctx context.Context, session string) (cart.State, error)
	DropSnapshot(ctx context.Context, session string) error
}

// Reconciler turns a hosted-payment-page return into a recorded order.
type Reconciler struct {
	repo   *Repo
	stripe StripeIntentClient
	carts  cartReader
	logg   *logger.Logger
}

// NewReconciler wires the reconciler.
func NewReconciler(repo *Repo, stripeClient StripeIntentClient, carts cartReader, logg *logger.Logger) (*Reconciler, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if stripeClient == nil {
		return nil, errors.New("stripe client is required")
	}
	if carts == nil {
		return nil, errors.New("cart reader is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Reconciler{repo: repo, stripe: stripeClient, carts: carts, logg: logg}, nil
}

// Confirm checks the payment intent behind the client secret and, on success,
// records the order exactly once from the live cart, then clears it.
func (r *Reconciler) Confirm(ctx context.Context, userID, cartSession, clientSecret string) (*ConfirmResult, error) {
	if strings.TrimSpace(clientSecret) == "" {
		return &ConfirmResult{Outcome: OutcomeRedirectHome}, nil
	}

	intentID := intentIDFromSecret(clientSecret)
	if intentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "malformed client secret")
	}

	params := &stripe.PaymentIntentParams{
		ClientSecret: stripe.String(clientSecret),
	}
	intent, err := r.stripe.RetrievePaymentIntent(ctx, intentID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieving payment intent")
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return r.recordOrder(ctx, userID, cartSession, intent)

	case stripe.PaymentIntentStatusProcessing:
		return &ConfirmResult{
			Outcome: OutcomeProcessing,
			Message: "Your payment is processing.",
		}, nil

	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return &ConfirmResult{
			Outcome: OutcomeTryAgain,
			Message: "Your payment was not successful, please try again.",
		}, nil

	default:
		return &ConfirmResult{
			Outcome: OutcomeFailed,
			Message: "Something went wrong.",
		}, nil
	}
}

func (r *Reconciler) recordOrder(ctx context.Context, userID, cartSession string, intent *stripe.PaymentIntent) (*ConfirmResult, error) {
	// items come from the live cart at confirmation time; intent metadata is
	// only an eventually-consistent mirror used by the public lookup
	state, err := r.carts.Snapshot(ctx, cartSession)
	if err != nil {
		ectx := r.logg.WithField(ctx, "payment_intent_id", intent.ID)
		r.logg.Error(ectx, "loading cart for order recording failed", err)
		return r.unrecorded(intent.ID), nil
	}

	items := make(types.OrderItemList, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, types.OrderItemSnapshot{
			ProductID: item.ProductID,
			PriceID:   item.PriceID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := &models.Order{
		ID:                intent.ID,
		UserID:            userID,
		TotalAmount:       decimal.NewFromInt(intent.Amount).Div(decimal.NewFromInt(100)),
		Items:             items,
		ShippingAddress:   shippingFromMetadata(intent.Metadata),
		Status:            enums.OrderStatusPaid,
		FulfillmentStatus: enums.FulfillmentStatusUnfulfilled,
	}

	created, err := r.repo.Record(ctx, order)
	if err != nil {
		ectx := r.logg.WithFields(ctx, map[string]any{
			"payment_intent_id": intent.ID,
			"amount_cents":      intent.Amount,
		})
		r.logg.Error(ectx, "PAYMENT TAKEN BUT ORDER NOT RECORDED", err)
		return r.unrecorded(intent.ID), nil
	}

	if !created {
		ictx := r.logg.WithField(ctx, "payment_intent_id", intent.ID)
		r.logg.Info(ictx, "order already recorded, treating confirm as success")
	}

	// the cart is cleared only once the record is on file
	if err := r.carts.DropSnapshot(ctx, cartSession); err != nil {
		wctx := r.logg.WithField(ctx, "error", err.Error())
		r.logg.Warn(wctx, "clearing cart after order recording failed")
	}

	return &ConfirmResult{
		Outcome: OutcomeRecorded,
		OrderID: intent.ID,
		Message: "Payment successful! Thank you for your purchase.",
	}, nil
}

func (r *Reconciler) unrecorded(intentID string) *ConfirmResult {
	return &ConfirmResult{
		Outcome: OutcomeUnrecorded,
		OrderID: intentID,
		Message: "Payment successful but failed to record order. Please contact support.",
	}
}

// intentIDFromSecret strips the "_secret..." suffix off a client secret.
func intentIDFromSecret(clientSecret string) string {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return ""
	}
	return clientSecret[:idx]
}

func shippingFromMetadata(metadata map[string]string) types.ShippingAddress {
	var addr types.ShippingAddress
	raw := metadata["shipping_address"]
	if raw == "" {
		return addr
	}
	// an unparseable snapshot degrades to empty rather than failing the record
	_ = json.Unmarshal([]byte(raw), &addr)
	return addr
}
