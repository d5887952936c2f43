package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/models"
	"github.com/gartstein/gstdesk/internal/records/validation"
	"go.uber.org/zap"
)

// CompanyService provides methods to manage companies via validation,
// storage operations and event production.
type CompanyService struct {
	storage  CompanyStorage
	producer EventProducer
	logger   *zap.Logger
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(storage CompanyStorage, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		storage:  storage,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

// CreateCompany validates the payload, persists a new Company and fires a
// creation event. The GST uniqueness check belongs to storage.
func (s *CompanyService) CreateCompany(ctx context.Context, in models.CreateCompany) (*models.Company, error) {
	in, err := validation.CompanyCreate(in)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		CompanyName: in.CompanyName,
		GSTNo:       in.GSTNo,
		StateCode:   in.StateCode,
	}
	if err := s.storage.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, e.ErrDuplicateGST) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.producer.Produce(events.CompanyCreated, company.ID, company)
	return company, nil
}

// GetCompany retrieves a Company by ID, returning an error if not found.
func (s *CompanyService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	company, err := s.storage.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns all companies, most recently created first.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.storage.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany validates and applies a partial update, then returns the
// full updated record and fires an update event.
func (s *CompanyService) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	if !update.HasChanges() {
		return nil, e.ErrNoFieldsToUpdate
	}
	update, err := validation.CompanyUpdate(update)
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateCompany(ctx, update)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrDuplicateGST) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.producer.Produce(events.CompanyUpdated, updated.ID, updated)
	return updated, nil
}

// DeleteCompany removes a Company by ID and fires a deletion event.
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCompany(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.producer.Produce(events.CompanyDeleted, id, nil)
	return nil
}

// SearchCompanies matches the query against company name, GST number and
// state code.
func (s *CompanyService) SearchCompanies(ctx context.Context, query string) ([]*models.Company, error) {
	companies, err := s.storage.SearchCompanies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return companies, nil
}

// ValidateCreate runs the create validation without persisting. The UI uses
// it for live field feedback before submission.
func (s *CompanyService) ValidateCreate(in models.CreateCompany) (models.CreateCompany, error) {
	return validation.CompanyCreate(in)
}

// ValidateUpdate runs the update validation without persisting.
func (s *CompanyService) ValidateUpdate(update *models.CompanyUpdate) (*models.CompanyUpdate, error) {
	return validation.CompanyUpdate(update)
}
