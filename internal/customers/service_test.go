package customers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"

	"github.com/caribvital/seamoss-backend/pkg/config"
	"github.com/caribvital/seamoss-backend/pkg/db"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	"github.com/caribvital/seamoss-backend/pkg/types"
)

type stubStripeCustomers struct {
	existing  *stripe.Customer
	findErr   error
	updateErr error
	createErr error

	createCalls int
	updateCalls int
	lastParams  *stripe.CustomerParams
}

func (s *stubStripeCustomers) FindByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.existing, nil
}

func (s *stubStripeCustomers) Update(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error) {
	s.updateCalls++
	s.lastParams = params
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &stripe.Customer{ID: id}, nil
}

func (s *stubStripeCustomers) Create(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	s.createCalls++
	s.lastParams = params
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &stripe.Customer{ID: "cus_new"}, nil
}

func setupCustomerDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS customer_info (
  user_id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return client
}

func newCustomerTestService(t *testing.T, client *db.Client, sc StripeCustomerClient) *Service {
	t.Helper()

	repo, err := NewRepo(client)
	require.NoError(t, err)
	svc, err := NewService(repo, sc, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func validInfo() Info {
	return Info{
		FullName: "Amara Joseph",
		Email:    "amara@example.com",
		Address: types.ShippingAddress{
			Street:     "1 Bay Rd",
			City:       "Castries",
			State:      "LC",
			PostalCode: "00000",
			Country:    "LC",
		},
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	svc := newCustomerTestService(t, setupCustomerDB(t), &stubStripeCustomers{})
	badPhone := "555-1234"

	cases := []struct {
		name   string
		mutate func(*Info)
	}{
		{"missing name", func(i *Info) { i.FullName = " " }},
		{"bad email", func(i *Info) { i.Email = "not-an-email" }},
		{"bad phone", func(i *Info) { i.Phone = &badPhone }},
		{"missing street", func(i *Info) { i.Address.Street = "" }},
		{"missing country", func(i *Info) { i.Address.Country = "" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := validInfo()
			tc.mutate(&info)
			_, err := svc.Submit(context.Background(), "user-1", info)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestSubmitCreatesNewProcessorCustomer(t *testing.T) {
	t.Parallel()

	sc := &stubStripeCustomers{}
	svc := newCustomerTestService(t, setupCustomerDB(t), sc)

	res, err := svc.Submit(context.Background(), "user-1", validInfo())
	require.NoError(t, err)
	assert.Equal(t, "cus_new", res.CustomerID)
	assert.False(t, res.IsExisting)
	assert.Equal(t, 1, sc.createCalls)
	assert.Equal(t, 0, sc.updateCalls)
	require.NotNil(t, sc.lastParams)
	assert.NotEmpty(t, sc.lastParams.Metadata["createdAt"])
}

func TestSubmitUpdatesExistingProcessorCustomer(t *testing.T) {
	t.Parallel()

	sc := &stubStripeCustomers{existing: &stripe.Customer{ID: "cus_existing"}}
	svc := newCustomerTestService(t, setupCustomerDB(t), sc)

	res, err := svc.Submit(context.Background(), "user-1", validInfo())
	require.NoError(t, err)
	assert.Equal(t, "cus_existing", res.CustomerID)
	assert.True(t, res.IsExisting)
	assert.Equal(t, 1, sc.updateCalls)
	assert.Equal(t, 0, sc.createCalls)
}

func TestSubmitLookupFailureFallsThroughToCreate(t *testing.T) {
	t.Parallel()

	sc := &stubStripeCustomers{findErr: errors.New("stripe down")}
	svc := newCustomerTestService(t, setupCustomerDB(t), sc)

	res, err := svc.Submit(context.Background(), "user-1", validInfo())
	require.NoError(t, err)
	assert.Equal(t, "cus_new", res.CustomerID)
	assert.Equal(t, 1, sc.createCalls)
}

func TestSubmitPersistsAndRefreshesRow(t *testing.T) {
	t.Parallel()

	client := setupCustomerDB(t)
	svc := newCustomerTestService(t, client, &stubStripeCustomers{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-1", validInfo())
	require.NoError(t, err)

	info := validInfo()
	info.FullName = "Amara J. Joseph"
	_, err = svc.Submit(ctx, "user-1", info)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Amara J. Joseph", stored.FullName)
	assert.Equal(t, "Castries", stored.Address.City)
}

func TestSubmitRowFailureStillReturnsCustomer(t *testing.T) {
	t.Parallel()

	client := setupCustomerDB(t)
	require.NoError(t, client.Exec(context.Background(), "DROP TABLE customer_info").Error)
	svc := newCustomerTestService(t, client, &stubStripeCustomers{})

	res, err := svc.Submit(context.Background(), "user-1", validInfo())
	require.NoError(t, err, "row write failure must not block checkout")
	assert.Equal(t, "cus_new", res.CustomerID)
}

func TestGetMissingUserReturnsNil(t *testing.T) {
	t.Parallel()

	svc := newCustomerTestService(t, setupCustomerDB(t), &stubStripeCustomers{})

	stored, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
