package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
	"github.com/caribvital/seamoss-backend/pkg/enums"
)

// sortFields whitelists what admins may sort on.
var sortFields = map[string]string{
	"created_at":         "created_at",
	"total_amount":       "total_amount",
	"fulfillment_status": "fulfillment_status",
}

// ListParams shapes the admin order listing.
type ListParams struct {
	FulfillmentStatus *enums.FulfillmentStatus
	SortField         string
	SortDirection     string
	Limit             int
}

// Repo persists recorded orders.
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

// Record inserts the order once. The primary key is the payment intent id, so
// a duplicate confirm is absorbed here: created=false means the order was
// already on file, which callers treat as success.
func (r *Repo) Record(ctx context.Context, order *models.Order) (created bool, err error) {
	result := r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(order)
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Get returns one order by payment intent id.
func (r *Repo) Get(ctx context.Context, id string) (*models.Order, error) {
	var row models.Order
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByUser returns a user's orders, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Order
	err := r.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// List returns orders for the admin dashboard. Sort input outside the
// whitelist falls back to created_at descending.
func (r *Repo) List(ctx context.Context, params ListParams) ([]models.Order, error) {
	column, ok := sortFields[params.SortField]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortDirection == "asc" {
		direction = "ASC"
	}
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := r.conn.WithContext(ctx).Model(&models.Order{})
	if params.FulfillmentStatus != nil {
		query = query.Where("fulfillment_status = ?", *params.FulfillmentStatus)
	}

	var rows []models.Order
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// UpdateFulfillment writes a new fulfillment state.
func (r *Repo) UpdateFulfillment(ctx context.Context, id string, status enums.FulfillmentStatus) error {
	return r.conn.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("fulfillment_status", status).Error
}
