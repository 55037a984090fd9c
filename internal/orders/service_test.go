package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribvital/seamoss-backend/pkg/config"
	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

func setupOrderService(t *testing.T) (*Service, *Repo) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  items TEXT NOT NULL,
  shipping_address TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  fulfillment_status TEXT NOT NULL DEFAULT 'unfulfilled',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)

	repo, err := NewRepo(client)
	require.NoError(t, err)
	svc, err := NewService(client, repo, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc, repo
}

func TestToggleFulfillmentFlipsState(t *testing.T) {
	t.Parallel()

	svc, repo := setupOrderService(t)
	ctx := context.Background()

	_, err := repo.Record(ctx, testOrder("pi_1", "user-1"))
	require.NoError(t, err)

	res, err := svc.ToggleFulfillment(ctx, "pi_1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, enums.FulfillmentStatusFulfilled, res.FulfillmentStatus)

	res, err = svc.ToggleFulfillment(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, enums.FulfillmentStatusUnfulfilled, res.FulfillmentStatus)
}

func TestToggleFulfillmentRejectsPendingPayment(t *testing.T) {
	t.Parallel()

	svc, repo := setupOrderService(t)
	ctx := context.Background()

	pending := testOrder("pi_pending", "user-1")
	pending.Status = enums.OrderStatusPending
	_, err := repo.Record(ctx, pending)
	require.NoError(t, err)

	_, err = svc.ToggleFulfillment(ctx, "pi_pending")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestToggleFulfillmentMissingOrder(t *testing.T) {
	t.Parallel()

	svc, _ := setupOrderService(t)

	_, err := svc.ToggleFulfillment(context.Background(), "pi_missing")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestHistoryRequiresUser(t *testing.T) {
	t.Parallel()

	svc, _ := setupOrderService(t)

	_, err := svc.History(context.Background(), "", 10)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestHistoryReturnsUserOrders(t *testing.T) {
	t.Parallel()

	svc, repo := setupOrderService(t)
	ctx := context.Background()

	_, err := repo.Record(ctx, testOrder("pi_1", "user-1"))
	require.NoError(t, err)
	_, err = repo.Record(ctx, testOrder("pi_2", "user-2"))
	require.NoError(t, err)

	rows, err := svc.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pi_1", rows[0].ID)
}
