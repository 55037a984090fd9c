package customers

import (
	"context"

	pkgstripe "github.com/caribvital/seamoss-backend/pkg/stripe"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/customer"
)

// StripeCustomerClient exposes the subset of Stripe operations required by the
// customer service.
type StripeCustomerClient interface {
	FindByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	Update(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error)
	Create(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
}

type stripeClientWrapper struct{}

// NewStripeClient wraps the provided Stripe client so the customer service can
// be tested.
func NewStripeClient(api *pkgstripe.Client) StripeCustomerClient {
	if api == nil {
		return nil
	}
	return &stripeClientWrapper{}
}

// FindByEmail returns the first customer matching the email, or nil when none
// exists. Best effort: email typos can still create duplicates.
func (w *stripeClientWrapper) FindByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	for iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (w *stripeClientWrapper) Update(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error) {
	if params != nil {
		params.Context = ctx
	}
	return customer.Update(id, params)
}

func (w *stripeClientWrapper) Create(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	if params != nil {
		params.Context = ctx
	}
	return customer.New(params)
}
