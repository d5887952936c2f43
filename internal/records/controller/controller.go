// Package controller implements the core business logic (service layer) for
// the business records, orchestrating validation, storage operations and
// record events. One service per entity kind; each service owns no state of
// its own and is safe for concurrent use.
package controller

import (
	"context"

	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/models"
)

// EventProducer publishes record lifecycle events. The Nop implementation is
// used when no broker is configured.
type EventProducer interface {
	Produce(eventType events.EventType, recordID int64, record interface{})
}

// CompanyStorage defines the storage interface for Company records. Both the
// gorm repository and the in-memory store satisfy it.
type CompanyStorage interface {
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	UpdateCompany(ctx context.Context, u *models.CompanyUpdate) (*models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error
	SearchCompanies(ctx context.Context, query string) ([]*models.Company, error)
}

// CategoryStorage defines the storage interface for Category records.
type CategoryStorage interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, u *models.CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	SearchCategories(ctx context.Context, query string) ([]*models.Category, error)
}

// CustomerStorage defines the storage interface for Customer records.
type CustomerStorage interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, u *models.CustomerUpdate) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error)
}
