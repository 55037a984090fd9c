package orders

import (
	"context"
	"errors"

	"github.com/caribvital/seamoss-backend/pkg/db"
	"github.com/caribvital/seamoss-backend/pkg/db/models"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
	"gorm.io/gorm"
)

// ToggleResult reports the state after a fulfillment flip.
type ToggleResult struct {
	Success           bool                    `json:"success"`
	FulfillmentStatus enums.FulfillmentStatus `json:"fulfillment_status"`
}

// Service covers the authenticated history and admin fulfillment surfaces.
type Service struct {
	client *db.Client
	repo   *Repo
	logg   *logger.Logger
}

// NewService wires the order service.
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

// History returns the session user's recorded orders.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return rows, nil
}

// AdminList returns orders for the dashboard with whitelisted sorting.
func (s *Service) AdminList(ctx context.Context, params ListParams) ([]models.Order, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return rows, nil
}

// ToggleFulfillment flips unfulfilled<->fulfilled atomically. Orders still in
// payment-pending state are not toggled.
func (s *Service) ToggleFulfillment(ctx context.Context, orderID string) (*ToggleResult, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	var next enums.FulfillmentStatus
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.Get(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
		}
		if order == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.Status == enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order payment is still pending")
		}

		next = order.FulfillmentStatus.Toggle()
		if err := repo.UpdateFulfillment(ctx, orderID, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating fulfillment status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Success: true, FulfillmentStatus: next}, nil
}
