package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// UpdateParams shapes one level change.
type UpdateParams struct {
	ProductID    string
	NewLevel     int
	ChangeType   enums.InventoryChangeType
	ChangeReason *string
}

// Service maintains stock levels with an adjustment trail.
type Service struct {
	client *db.Client
	repo   *Repo
	logg   *logger.Logger
}

// NewService wires the inventory service.
func NewService(client *db.Client, repo *Repo, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{client: client, repo: repo, logg: logg}, nil
}

// Levels returns all tracked stock levels.
func (s *Service) Levels(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing inventory")
	}
	return rows, nil
}

// History returns the adjustment trail for one product.
func (s *Service) History(ctx context.Context, productID string, limit int) ([]models.InventoryAdjustment, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	rows, err := s.repo.ListAdjustments(ctx, productID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing inventory history")
	}
	return rows, nil
}

// UpdateLevel sets a product's level and writes the history row in the same
// transaction.
func (s *Service) UpdateLevel(ctx context.Context, params UpdateParams) (*models.InventoryItem, error) {
	if params.ProductID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if params.NewLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "level cannot be negative")
	}
	if !params.ChangeType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid change type").
			WithDetails(map[string]any{"change_type": params.ChangeType})
	}

	var updated *models.InventoryItem
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		previous := 0
		existing, err := repo.GetItem(ctx, params.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading inventory item")
		}
		if existing != nil {
			previous = existing.Level
		}

		item := &models.InventoryItem{
			ProductID: params.ProductID,
			Level:     params.NewLevel,
		}
		if err := repo.UpsertItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing inventory level")
		}

		adjustment := &models.InventoryAdjustment{
			ID:            uuid.NewString(),
			ProductID:     params.ProductID,
			PreviousLevel: previous,
			NewLevel:      params.NewLevel,
			ChangeType:    params.ChangeType,
			ChangeReason:  params.ChangeReason,
		}
		if err := repo.RecordAdjustment(ctx, adjustment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing inventory adjustment")
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
