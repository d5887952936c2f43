package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gartstein/gstdesk/internal/records/controller"
	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/memory"
	"github.com/gartstein/gstdesk/internal/records/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	logger := zaptest.NewLogger(t)
	store := memory.New()
	producer := events.Nop{}

	companies := controller.NewCompanyService(store.Companies, producer, logger)
	categories := controller.NewCategoryService(store.Categories, producer, logger)
	customers := controller.NewCustomerService(store.Customers, store.Categories, producer, logger)

	return NewDispatcher(companies, categories, customers, logger)
}

func invoke(t *testing.T, d *Dispatcher, command string, payload interface{}) (interface{}, error) {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	return d.Invoke(context.Background(), command, raw)
}

func TestDispatcher_CompanyRoundTrip(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := invoke(t, d, "create_company", map[string]string{
		"company_name": "Acme Pvt Ltd",
		"gst_no":       "27ABCDE1234F1Z5",
		"state_code":   "27",
	})
	require.NoError(t, err)

	created, ok := result.(*models.Company)
	require.True(t, ok)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "27ABCDE1234F1Z5", created.GSTNo, "GST stored exactly as given")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt, "timestamps equal at creation")

	result, err = invoke(t, d, "get_company", map[string]int64{"id": created.ID})
	require.NoError(t, err)
	fetched := result.(*models.Company)
	assert.Equal(t, created, fetched, "create then get returns an equal record")
}

func TestDispatcher_CompanyRejection(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := invoke(t, d, "create_company", map[string]string{
		"company_name": "Acme",
		"gst_no":       "short",
		"state_code":   "27",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
	assert.Equal(t, "GST number must be 15 characters and follow GST format", err.Error())

	result, err := invoke(t, d, "list_companies", nil)
	require.NoError(t, err)
	assert.Empty(t, result.([]*models.Company), "rejected create persists nothing")
}

func TestDispatcher_CompanyDuplicate(t *testing.T) {
	d := newTestDispatcher(t)

	payload := map[string]string{
		"company_name": "Acme",
		"gst_no":       "27ABCDE1234F1Z5",
		"state_code":   "27",
	}
	_, err := invoke(t, d, "create_company", payload)
	require.NoError(t, err)

	payload["company_name"] = "Impostor"
	_, err = invoke(t, d, "create_company", payload)
	assert.ErrorIs(t, err, e.ErrDuplicateGST)

	result, err := invoke(t, d, "list_companies", nil)
	require.NoError(t, err)
	assert.Len(t, result.([]*models.Company), 1)
}

func TestDispatcher_UpdateCompany(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := invoke(t, d, "create_company", map[string]string{
		"company_name": "Acme",
		"gst_no":       "27ABCDE1234F1Z5",
		"state_code":   "27",
	})
	require.NoError(t, err)
	created := result.(*models.Company)

	result, err = invoke(t, d, "update_company", map[string]interface{}{
		"id":         created.ID,
		"state_code": "29",
	})
	require.NoError(t, err)
	updated := result.(*models.Company)
	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, "27ABCDE1234F1Z5", updated.GSTNo)
	assert.Equal(t, "29", updated.StateCode)

	_, err = invoke(t, d, "update_company", map[string]interface{}{"id": created.ID})
	assert.ErrorIs(t, err, e.ErrNoFieldsToUpdate)
}

func TestDispatcher_ValidateDoesNotPersist(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := invoke(t, d, "validate_company_create", map[string]string{
		"company_name": "  Acme  ",
		"gst_no":       "27ABCDE1234F1Z5",
		"state_code":   "27",
	})
	require.NoError(t, err)
	validated := result.(models.CreateCompany)
	assert.Equal(t, "Acme", validated.CompanyName, "validation canonicalizes")

	listed, err := invoke(t, d, "list_companies", nil)
	require.NoError(t, err)
	assert.Empty(t, listed.([]*models.Company))
}

func TestDispatcher_CustomerJoin(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := invoke(t, d, "create_category", map[string]string{"name": "Wholesale"})
	require.NoError(t, err)
	category := result.(*models.Category)

	result, err = invoke(t, d, "create_customer", map[string]interface{}{
		"report_customer": "Acme Retail",
		"tally_customer":  "Acme Retail (Tally)",
		"category_id":     category.ID,
	})
	require.NoError(t, err)
	customer := result.(*models.Customer)
	require.NotNil(t, customer.Category)
	assert.Equal(t, "Wholesale", customer.Category.Name)

	// Customer gst_no is optional and exempt when empty.
	_, err = invoke(t, d, "create_customer", map[string]interface{}{
		"report_customer": "Second",
		"tally_customer":  "Second",
		"gst_no":          "",
		"category_id":     category.ID,
	})
	assert.NoError(t, err)
}

func TestDispatcher_SearchCompanies(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := invoke(t, d, "create_company", map[string]string{
		"company_name": "Acme Pvt Ltd",
		"gst_no":       "27ABCDE1234F1Z5",
		"state_code":   "27",
	})
	require.NoError(t, err)

	result, err := invoke(t, d, "search_companies", map[string]string{"query": "acme"})
	require.NoError(t, err)
	assert.Len(t, result.([]*models.Company), 1)

	result, err = invoke(t, d, "search_companies", map[string]string{"query": "ABCDE1234F1Z5"})
	require.NoError(t, err)
	assert.Len(t, result.([]*models.Company), 1)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Invoke(context.Background(), "frobnicate", nil)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestDispatcher_MalformedPayload(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Invoke(context.Background(), "create_company", json.RawMessage(`{"company_name": 7}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}
