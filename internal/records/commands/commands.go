// Package commands exposes the record services through a named-command
// boundary: each operation is a named command taking a JSON payload and
// returning a JSON result or a typed error envelope. The desktop UI invokes
// commands by name, mirroring how it talked to the previous backend.
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gartstein/gstdesk/internal/records/controller"
	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/models"
	"go.uber.org/zap"
)

// Dispatcher routes named commands to their handlers.
type Dispatcher struct {
	handlers map[string]handlerFunc
	logger   *zap.Logger
}

type handlerFunc func(ctx context.Context, payload json.RawMessage) (interface{}, error)

type idRequest struct {
	ID int64 `json:"id"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// NewDispatcher registers the full command set for the three record kinds:
// create, get, list, update, delete, search, plus the pure validate_create /
// validate_update entry points the UI uses for live field feedback.
func NewDispatcher(
	companies *controller.CompanyService,
	categories *controller.CategoryService,
	customers *controller.CustomerService,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]handlerFunc),
		logger:   logger.Named("commands"),
	}

	d.register("create_company", handle(func(ctx context.Context, req models.CreateCompany) (interface{}, error) {
		return companies.CreateCompany(ctx, req)
	}))
	d.register("get_company", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return companies.GetCompany(ctx, req.ID)
	}))
	d.register("list_companies", handle(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return companies.ListCompanies(ctx)
	}))
	d.register("update_company", handle(func(ctx context.Context, req models.CompanyUpdate) (interface{}, error) {
		return companies.UpdateCompany(ctx, &req)
	}))
	d.register("delete_company", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return nil, companies.DeleteCompany(ctx, req.ID)
	}))
	d.register("search_companies", handle(func(ctx context.Context, req queryRequest) (interface{}, error) {
		return companies.SearchCompanies(ctx, req.Query)
	}))
	d.register("validate_company_create", handle(func(_ context.Context, req models.CreateCompany) (interface{}, error) {
		return companies.ValidateCreate(req)
	}))
	d.register("validate_company_update", handle(func(_ context.Context, req models.CompanyUpdate) (interface{}, error) {
		return companies.ValidateUpdate(&req)
	}))

	d.register("create_category", handle(func(ctx context.Context, req models.CreateCategory) (interface{}, error) {
		return categories.CreateCategory(ctx, req)
	}))
	d.register("get_category", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return categories.GetCategory(ctx, req.ID)
	}))
	d.register("list_categories", handle(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return categories.ListCategories(ctx)
	}))
	d.register("update_category", handle(func(ctx context.Context, req models.CategoryUpdate) (interface{}, error) {
		return categories.UpdateCategory(ctx, &req)
	}))
	d.register("delete_category", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return nil, categories.DeleteCategory(ctx, req.ID)
	}))
	d.register("search_categories", handle(func(ctx context.Context, req queryRequest) (interface{}, error) {
		return categories.SearchCategories(ctx, req.Query)
	}))
	d.register("validate_category_create", handle(func(_ context.Context, req models.CreateCategory) (interface{}, error) {
		return categories.ValidateCreate(req)
	}))
	d.register("validate_category_update", handle(func(_ context.Context, req models.CategoryUpdate) (interface{}, error) {
		return categories.ValidateUpdate(&req)
	}))

	d.register("create_customer", handle(func(ctx context.Context, req models.CreateCustomer) (interface{}, error) {
		return customers.CreateCustomer(ctx, req)
	}))
	d.register("get_customer", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return customers.GetCustomer(ctx, req.ID)
	}))
	d.register("list_customers", handle(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return customers.ListCustomers(ctx)
	}))
	d.register("update_customer", handle(func(ctx context.Context, req models.CustomerUpdate) (interface{}, error) {
		return customers.UpdateCustomer(ctx, &req)
	}))
	d.register("delete_customer", handle(func(ctx context.Context, req idRequest) (interface{}, error) {
		return nil, customers.DeleteCustomer(ctx, req.ID)
	}))
	d.register("search_customers", handle(func(ctx context.Context, req queryRequest) (interface{}, error) {
		return customers.SearchCustomers(ctx, req.Query)
	}))
	d.register("validate_customer_create", handle(func(_ context.Context, req models.CreateCustomer) (interface{}, error) {
		return customers.ValidateCreate(req)
	}))
	d.register("validate_customer_update", handle(func(_ context.Context, req models.CustomerUpdate) (interface{}, error) {
		return customers.ValidateUpdate(&req)
	}))

	return d
}

func (d *Dispatcher) register(name string, fn handlerFunc) {
	d.handlers[name] = fn
}

// Invoke runs the named command against the given payload.
func (d *Dispatcher) Invoke(ctx context.Context, command string, payload json.RawMessage) (interface{}, error) {
	fn, ok := d.handlers[command]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", e.ErrNotFound, command)
	}
	return fn(ctx, payload)
}

// Commands returns the registered command names. Used by the server for
// startup logging.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}

// handle decodes the JSON payload into the request type before calling fn.
// An empty payload decodes to the zero request, so list commands can be
// invoked without a body.
func handle[Req any](fn func(ctx context.Context, req Req) (interface{}, error)) handlerFunc {
	return func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, e.Invalid("", "invalid request payload")
			}
		}
		return fn(ctx, req)
	}
}
