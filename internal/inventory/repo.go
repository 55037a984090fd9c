package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
)

// Repo persists inventory levels and adjustment history.
type Repo struct {
	client *db.Client
	conn   *gorm.DB
}

// NewRepo wires the repository.
func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	return &Repo{client: client, conn: client.DB()}, nil
}

// WithTx returns a repo bound to the given transaction.
func (r *Repo) WithTx(tx *gorm.DB) *Repo {
	return &Repo{client: r.client, conn: tx}
}

// GetItem returns the level row for a product, or nil when untracked.
func (r *Repo) GetItem(ctx context.Context, productID string) (*models.InventoryItem, error) {
	var row models.InventoryItem
	err := r.conn.WithContext(ctx).Where("product_id = ?", productID).First(&row).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListItems returns all tracked levels.
func (r *Repo) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.conn.WithContext(ctx).Order("product_id ASC").Find(&rows).Error
	return rows, err
}

// UpsertItem writes the level row for a product.
func (r *Repo) UpsertItem(ctx context.Context, row *models.InventoryItem) error {
	return r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).
		Create(row).Error
}

// RecordAdjustment appends one history row.
func (r *Repo) RecordAdjustment(ctx context.Context, row *models.InventoryAdjustment) error {
	return r.conn.WithContext(ctx).Create(row).Error
}

// ListAdjustments returns history for a product, newest first.
func (r *Repo) ListAdjustments(ctx context.Context, productID string, limit int) ([]models.InventoryAdjustment, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.InventoryAdjustment
	err := r.conn.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
