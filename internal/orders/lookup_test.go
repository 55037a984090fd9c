package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
)

func TestLookupRequiresOrderID(t *testing.T) {
	t.Parallel()

	svc, err := NewLookupService(&stubIntentClient{})
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), "  ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Order ID is required", typed.Message())
}

func TestLookupRebuildsItemsFromMetadata(t *testing.T) {
	t.Parallel()

	sc := &stubIntentClient{intent: &stripe.PaymentIntent{
		ID:      "pi_1",
		Amount:  5997,
		Status:  stripe.PaymentIntentStatusSucceeded,
		Created: 1700000000,
		Metadata: map[string]string{
			"order_items": `[
				{"price_id":"price_gold_gel_16","quantity":2,"price":24.99},
				{"price_id":"price_gel_spoon","quantity":1,"price":7.99}
			]`,
		},
	}}
	svc, err := NewLookupService(sc)
	require.NoError(t, err)

	res, err := svc.Lookup(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", sc.lastID)
	assert.Equal(t, int64(5997), res.Amount)
	assert.Equal(t, string(stripe.PaymentIntentStatusSucceeded), res.Status)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(4998), res.Items[0].Amount)
	assert.Equal(t, "Order item (price_gold_gel_16)", res.Items[0].Description)
	assert.Equal(t, int64(799), res.Items[1].Amount)
}

func TestLookupMalformedMetadataDegrades(t *testing.T) {
	t.Parallel()

	sc := &stubIntentClient{intent: &stripe.PaymentIntent{
		ID:       "pi_1",
		Amount:   1000,
		Status:   stripe.PaymentIntentStatusSucceeded,
		Metadata: map[string]string{"order_items": "{broken"},
	}}
	svc, err := NewLookupService(sc)
	require.NoError(t, err)

	res, err := svc.Lookup(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(1000), res.Amount)
}

func TestLookupUnknownIntentIsNotFound(t *testing.T) {
	t.Parallel()

	sc := &stubIntentClient{err: &stripe.Error{
		Code: stripe.ErrorCodeResourceMissing,
		Msg:  "No such payment_intent: 'pi_nope'",
	}}
	svc, err := NewLookupService(sc)
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), "pi_nope")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Order not found", typed.Message())
}

func TestLookupRetrieveFailure(t *testing.T) {
	t.Parallel()

	svc, err := NewLookupService(&stubIntentClient{err: errors.New("stripe down")})
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), "pi_1")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
