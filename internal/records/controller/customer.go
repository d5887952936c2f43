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

// CustomerService provides methods to manage customers. Reads attach a
// denormalized Category snapshot by querying the category storage, a join
// performed here rather than in storage so the two record sets stay
// independent.
//
// category_id is historically a soft reference: the UI guarantees it points
// at a real category, and storage does not. StrictCategoryRefs turns on a
// write-time existence check for deployments that want the hard guarantee.
type CustomerService struct {
	storage    CustomerStorage
	categories CategoryStorage
	producer   EventProducer
	logger     *zap.Logger

	// StrictCategoryRefs rejects creates and updates whose category_id does
	// not resolve to an existing Category. Off by default.
	StrictCategoryRefs bool
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(storage CustomerStorage, categories CategoryStorage, producer EventProducer, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		storage:    storage,
		categories: categories,
		producer:   producer,
		logger:     logger.Named("customer_service"),
	}
}

// CreateCustomer validates the payload and persists a new Customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, in models.CreateCustomer) (*models.Customer, error) {
	in, err := validation.CustomerCreate(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryRef(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ReportCustomer: in.ReportCustomer,
		TallyCustomer:  in.TallyCustomer,
		CategoryID:     in.CategoryID,
	}
	if in.GSTNo != nil {
		customer.GSTNo = *in.GSTNo
	}
	if in.StateCode != nil {
		customer.StateCode = *in.StateCode
	}

	if err := s.storage.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.producer.Produce(events.CustomerCreated, customer.ID, customer)
	return s.attachCategory(ctx, customer)
}

// GetCustomer retrieves a Customer by ID with its Category snapshot.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.storage.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return s.attachCategory(ctx, customer)
}

// ListCustomers returns all customers with Category snapshots, most recently
// created first.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.storage.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return s.attachCategories(ctx, customers)
}

// UpdateCustomer validates and applies a partial update, then returns the
// full updated record with its Category snapshot.
func (s *CustomerService) UpdateCustomer(ctx context.Context, update *models.CustomerUpdate) (*models.Customer, error) {
	if !update.HasChanges() {
		return nil, e.ErrNoFieldsToUpdate
	}
	update, err := validation.CustomerUpdate(update)
	if err != nil {
		return nil, err
	}
	if update.CategoryID != nil {
		if err := s.checkCategoryRef(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.storage.UpdateCustomer(ctx, update)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.producer.Produce(events.CustomerUpdated, updated.ID, updated)
	return s.attachCategory(ctx, updated)
}

// DeleteCustomer removes a Customer by ID.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.producer.Produce(events.CustomerDeleted, id, nil)
	return nil
}

// SearchCustomers matches the query against both customer names and the GST
// number, attaching Category snapshots to the results.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	customers, err := s.storage.SearchCustomers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return s.attachCategories(ctx, customers)
}

// ValidateCreate runs the create validation without persisting.
func (s *CustomerService) ValidateCreate(in models.CreateCustomer) (models.CreateCustomer, error) {
	return validation.CustomerCreate(in)
}

// ValidateUpdate runs the update validation without persisting.
func (s *CustomerService) ValidateUpdate(update *models.CustomerUpdate) (*models.CustomerUpdate, error) {
	return validation.CustomerUpdate(update)
}

// checkCategoryRef enforces referential existence when StrictCategoryRefs is
// on. Permissive mode accepts any positive category_id, matching the
// historical behavior where the UI owns the guarantee.
func (s *CustomerService) checkCategoryRef(ctx context.Context, categoryID int64) error {
	if !s.StrictCategoryRefs {
		return nil
	}
	_, err := s.categories.GetCategory(ctx, categoryID)
	if errors.Is(err, e.ErrNotFound) {
		return e.Invalid("category_id", "Category does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to check category reference: %w", err)
	}
	return nil
}

// attachCategory populates the denormalized Category snapshot. A dangling
// category_id leaves the snapshot nil rather than failing the read.
func (s *CustomerService) attachCategory(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.CategoryID <= 0 {
		return customer, nil
	}
	category, err := s.categories.GetCategory(ctx, customer.CategoryID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return customer, nil
		}
		return nil, fmt.Errorf("failed to load category snapshot: %w", err)
	}
	customer.Category = category
	return customer, nil
}

func (s *CustomerService) attachCategories(ctx context.Context, customers []*models.Customer) ([]*models.Customer, error) {
	for _, customer := range customers {
		if _, err := s.attachCategory(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customers, nil
}
