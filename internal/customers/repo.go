package customers

import (
	"context"
	"errors"

	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
	"gorm.io/gorm/clause"
)

// Repo persists customer info rows keyed by session user.
type Repo struct {
	client *db.Client
}

// NewRepo wires the repository.
func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	return &Repo{client: client}, nil
}

// Upsert inserts or refreshes the row for a user.
func (r *Repo) Upsert(ctx context.Context, row *models.CustomerInfo) error {
	return r.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "phone", "address", "updated_at"}),
		}).
		Create(row).Error
}

// Get returns the stored info for a user, or nil when none exists.
func (r *Repo) Get(ctx context.Context, userID string) (*models.CustomerInfo, error) {
	var row models.CustomerInfo
	err := r.client.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
