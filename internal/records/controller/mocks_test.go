package controller

import (
	"context"
	"sync"

	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/models"
)

// MockCompanyStorage implements CompanyStorage for testing.
type MockCompanyStorage struct {
	createCompany   func(context.Context, *models.Company) error
	getCompany      func(context.Context, int64) (*models.Company, error)
	listCompanies   func(context.Context) ([]*models.Company, error)
	updateCompany   func(context.Context, *models.CompanyUpdate) (*models.Company, error)
	deleteCompany   func(context.Context, int64) error
	searchCompanies func(context.Context, string) ([]*models.Company, error)
}

func (m *MockCompanyStorage) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockCompanyStorage) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockCompanyStorage) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return m.listCompanies(ctx)
}

func (m *MockCompanyStorage) UpdateCompany(ctx context.Context, u *models.CompanyUpdate) (*models.Company, error) {
	return m.updateCompany(ctx, u)
}

func (m *MockCompanyStorage) DeleteCompany(ctx context.Context, id int64) error {
	return m.deleteCompany(ctx, id)
}

func (m *MockCompanyStorage) SearchCompanies(ctx context.Context, query string) ([]*models.Company, error) {
	return m.searchCompanies(ctx, query)
}

// MockCategoryStorage implements CategoryStorage for testing.
type MockCategoryStorage struct {
	createCategory   func(context.Context, *models.Category) error
	getCategory      func(context.Context, int64) (*models.Category, error)
	listCategories   func(context.Context) ([]*models.Category, error)
	updateCategory   func(context.Context, *models.CategoryUpdate) (*models.Category, error)
	deleteCategory   func(context.Context, int64) error
	searchCategories func(context.Context, string) ([]*models.Category, error)
}

func (m *MockCategoryStorage) CreateCategory(ctx context.Context, c *models.Category) error {
	return m.createCategory(ctx, c)
}

func (m *MockCategoryStorage) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return m.getCategory(ctx, id)
}

func (m *MockCategoryStorage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return m.listCategories(ctx)
}

func (m *MockCategoryStorage) UpdateCategory(ctx context.Context, u *models.CategoryUpdate) (*models.Category, error) {
	return m.updateCategory(ctx, u)
}

func (m *MockCategoryStorage) DeleteCategory(ctx context.Context, id int64) error {
	return m.deleteCategory(ctx, id)
}

func (m *MockCategoryStorage) SearchCategories(ctx context.Context, query string) ([]*models.Category, error) {
	return m.searchCategories(ctx, query)
}

// MockCustomerStorage implements CustomerStorage for testing.
type MockCustomerStorage struct {
	createCustomer  func(context.Context, *models.Customer) error
	getCustomer     func(context.Context, int64) (*models.Customer, error)
	listCustomers   func(context.Context) ([]*models.Customer, error)
	updateCustomer  func(context.Context, *models.CustomerUpdate) (*models.Customer, error)
	deleteCustomer  func(context.Context, int64) error
	searchCustomers func(context.Context, string) ([]*models.Customer, error)
}

func (m *MockCustomerStorage) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return m.createCustomer(ctx, c)
}

func (m *MockCustomerStorage) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return m.getCustomer(ctx, id)
}

func (m *MockCustomerStorage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return m.listCustomers(ctx)
}

func (m *MockCustomerStorage) UpdateCustomer(ctx context.Context, u *models.CustomerUpdate) (*models.Customer, error) {
	return m.updateCustomer(ctx, u)
}

func (m *MockCustomerStorage) DeleteCustomer(ctx context.Context, id int64) error {
	return m.deleteCustomer(ctx, id)
}

func (m *MockCustomerStorage) SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	return m.searchCustomers(ctx, query)
}

// MockProducer records produced events.
type MockProducer struct {
	mu     sync.Mutex
	events []events.EventType
}

func (m *MockProducer) Produce(eventType events.EventType, recordID int64, record interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, eventType)
}

func (m *MockProducer) produced() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.EventType(nil), m.events...)
}
