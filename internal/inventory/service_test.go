package inventory

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

func setupInventoryService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT PRIMARY KEY,
  level INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	require.NoError(t, client.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS inventory_adjustments (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  previous_level INTEGER NOT NULL,
  new_level INTEGER NOT NULL,
  change_type TEXT NOT NULL,
  change_reason TEXT,
  created_at DATETIME
);`).Error)

	repo, err := NewRepo(client)
	require.NoError(t, err)
	svc, err := NewService(client, repo, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestUpdateLevelValidation(t *testing.T) {
	t.Parallel()

	svc := setupInventoryService(t)
	ctx := context.Background()

	_, err := svc.UpdateLevel(ctx, UpdateParams{ProductID: "", NewLevel: 1, ChangeType: enums.InventoryChangeRestock})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.UpdateLevel(ctx, UpdateParams{ProductID: "gold-gel-16", NewLevel: -1, ChangeType: enums.InventoryChangeRestock})
	require.NotNil(t, pkgerrors.As(err))

	_, err = svc.UpdateLevel(ctx, UpdateParams{ProductID: "gold-gel-16", NewLevel: 1, ChangeType: "banana"})
	require.NotNil(t, pkgerrors.As(err))
}

func TestUpdateLevelWritesHistoryRow(t *testing.T) {
	t.Parallel()

	svc := setupInventoryService(t)
	ctx := context.Background()
	reason := "initial stock"

	item, err := svc.UpdateLevel(ctx, UpdateParams{
		ProductID:    "gold-gel-16",
		NewLevel:     40,
		ChangeType:   enums.InventoryChangeRestock,
		ChangeReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, item.Level)

	item, err = svc.UpdateLevel(ctx, UpdateParams{
		ProductID:  "gold-gel-16",
		NewLevel:   38,
		ChangeType: enums.InventoryChangeSale,
	})
	require.NoError(t, err)
	assert.Equal(t, 38, item.Level)

	history, err := svc.History(ctx, "gold-gel-16", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, row := range history {
		assert.NotEmpty(t, row.ID)
	}

	// the sale row carries the level it moved from
	var sale bool
	for _, row := range history {
		if row.ChangeType == enums.InventoryChangeSale {
			sale = true
			assert.Equal(t, 40, row.PreviousLevel)
			assert.Equal(t, 38, row.NewLevel)
		}
	}
	assert.True(t, sale, "expected a sale adjustment in history")

	levels, err := svc.Levels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, 38, levels[0].Level)
}

func TestHistoryRequiresProduct(t *testing.T) {
	t.Parallel()

	svc := setupInventoryService(t)

	_, err := svc.History(context.Background(), "", 10)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
