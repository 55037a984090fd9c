package customers

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v84"

	"github.com/caribvital/seamoss-backend/pkg/db/models"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

var (
	// mirrors the storefront form checks: simple local@domain.tld and E.164
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// Service validates checkout contact info, persists it and ensures a
// processor customer exists for the email.
type Service struct {
	repo   *Repo
	stripe StripeCustomerClient
	logg   *logger.Logger
}

// NewService wires the customer service.
func NewService(repo *Repo, stripeClient StripeCustomerClient, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if stripeClient == nil {
		return nil, errors.New("stripe client is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: repo, stripe: stripeClient, logg: logg}, nil
}

// Get returns previously stored info for the session user, or nil.
func (s *Service) Get(ctx context.Context, userID string) (*Info, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	row, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer info")
	}
	if row == nil {
		return nil, nil
	}
	return &Info{
		FullName: row.FullName,
		Email:    row.Email,
		Phone:    row.Phone,
		Address:  row.Address,
	}, nil
}

// Submit validates the form, stores it for the user and upserts the processor
// customer by email. A failed row write is downgraded to a warning so checkout
// can proceed with the submitted info.
func (s *Service) Submit(ctx context.Context, userID string, info Info) (*Result, error) {
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	if userID != "" {
		row := &models.CustomerInfo{
			UserID:   userID,
			FullName: strings.TrimSpace(info.FullName),
			Email:    strings.TrimSpace(info.Email),
			Phone:    info.Phone,
			Address:  info.Address,
		}
		if err := s.repo.Upsert(ctx, row); err != nil {
			wctx := s.logg.WithFields(ctx, map[string]any{"user_id": userID, "error": err.Error()})
			s.logg.Warn(wctx, "customer info upsert failed, continuing with submitted info")
		}
	}

	return s.ensureProcessorCustomer(ctx, info)
}

func (s *Service) ensureProcessorCustomer(ctx context.Context, info Info) (*Result, error) {
	email := strings.TrimSpace(info.Email)

	existing, err := s.stripe.FindByEmail(ctx, email)
	if err != nil {
		// a failed lookup falls through to create, matching the form's
		// best-effort matching
		ectx := s.logg.WithField(ctx, "error", err.Error())
		s.logg.Warn(ectx, "customer lookup by email failed")
		existing = nil
	}

	address := &stripe.AddressParams{
		Line1:      stripe.String(info.Address.Street),
		City:       stripe.String(info.Address.City),
		State:      stripe.String(info.Address.State),
		PostalCode: stripe.String(info.Address.PostalCode),
		Country:    stripe.String(info.Address.Country),
	}

	if existing != nil {
		params := &stripe.CustomerParams{
			Name:    stripe.String(info.FullName),
			Phone:   info.Phone,
			Address: address,
		}
		updated, err := s.stripe.Update(ctx, existing.ID, params)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating processor customer")
		}
		return &Result{CustomerID: updated.ID, IsExisting: true}, nil
	}

	params := &stripe.CustomerParams{
		Name:    stripe.String(info.FullName),
		Email:   stripe.String(email),
		Phone:   info.Phone,
		Address: address,
	}
	params.AddMetadata("createdAt", time.Now().UTC().Format(time.RFC3339))

	created, err := s.stripe.Create(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating processor customer")
	}
	return &Result{CustomerID: created.ID, IsExisting: false}, nil
}

func validateInfo(info Info) error {
	details := map[string]any{}

	if strings.TrimSpace(info.FullName) == "" {
		details["fullName"] = "full name is required"
	}
	email := strings.TrimSpace(info.Email)
	if email == "" || !emailRe.MatchString(email) {
		details["email"] = "a valid email is required"
	}
	if info.Phone != nil && *info.Phone != "" && !phoneRe.MatchString(*info.Phone) {
		details["phone"] = "phone must be E.164, e.g. +15551234567"
	}

	addr := info.Address
	if strings.TrimSpace(addr.Street) == "" {
		details["address.street"] = "street is required"
	}
	if strings.TrimSpace(addr.City) == "" {
		details["address.city"] = "city is required"
	}
	if strings.TrimSpace(addr.State) == "" {
		details["address.state"] = "state is required"
	}
	if strings.TrimSpace(addr.PostalCode) == "" {
		details["address.postalCode"] = "postal code is required"
	}
	if strings.TrimSpace(addr.Country) == "" {
		details["address.country"] = "country is required"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid customer info").WithDetails(details)
	}
	return nil
}
