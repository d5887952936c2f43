package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/gartstein/gstdesk/internal/pkg/utils"
	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidGST(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "27ABCDE1234F1Z5", true},
		{"valid lowercase", "27abcde1234f1z5", true},
		{"valid with padding", "  27ABCDE1234F1Z5  ", true},
		{"too short", "short", false},
		{"too long", "27ABCDE1234F1Z5X", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"non-alphanumeric", "27ABCDE1234F1Z-", false},
		{"non-ascii letter", "27ABCDE1234F1Zé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidGST(tt.input))
		})
	}
}

func TestCompanyCreate(t *testing.T) {
	valid := models.CreateCompany{
		CompanyName: "Acme Pvt Ltd",
		GSTNo:       "27ABCDE1234F1Z5",
		StateCode:   "27",
	}

	t.Run("valid payload passes unchanged", func(t *testing.T) {
		got, err := CompanyCreate(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, got)
	})

	t.Run("canonicalizes padded fields", func(t *testing.T) {
		in := models.CreateCompany{
			CompanyName: "  Acme Pvt Ltd  ",
			GSTNo:       " 27ABCDE1234F1Z5 ",
			StateCode:   " 27 ",
		}
		got, err := CompanyCreate(in)
		require.NoError(t, err)
		assert.Equal(t, valid, got)
	})

	tests := []struct {
		name    string
		mutate  func(*models.CreateCompany)
		message string
	}{
		{
			name:    "empty name",
			mutate:  func(c *models.CreateCompany) { c.CompanyName = "   " },
			message: "Company name is required",
		},
		{
			name:    "name too long",
			mutate:  func(c *models.CreateCompany) { c.CompanyName = strings.Repeat("a", 256) },
			message: "Company name must be 255 characters or less",
		},
		{
			name:    "empty gst",
			mutate:  func(c *models.CreateCompany) { c.GSTNo = "" },
			message: "GST number is required",
		},
		{
			name:    "malformed gst",
			mutate:  func(c *models.CreateCompany) { c.GSTNo = "short" },
			message: "GST number must be 15 characters and follow GST format",
		},
		{
			name:    "empty state code",
			mutate:  func(c *models.CreateCompany) { c.StateCode = " " },
			message: "State code is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := CompanyCreate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrInvalidInput)
			assert.Equal(t, tt.message, err.Error())
		})
	}

	// The limit is measured on the untrimmed input: a 255-character name
	// padded with whitespace is rejected even though the trimmed result
	// would fit. Deliberate, inherited behavior.
	t.Run("padded name over limit rejected", func(t *testing.T) {
		in := valid
		in.CompanyName = strings.Repeat("a", 255) + "   "
		_, err := CompanyCreate(in)
		require.Error(t, err)
		assert.Equal(t, "Company name must be 255 characters or less", err.Error())
	})

	t.Run("name at limit accepted", func(t *testing.T) {
		in := valid
		in.CompanyName = strings.Repeat("a", 255)
		_, err := CompanyCreate(in)
		assert.NoError(t, err)
	})

	t.Run("fails fast on first offending field", func(t *testing.T) {
		_, err := CompanyCreate(models.CreateCompany{})
		require.Error(t, err)
		assert.Equal(t, "Company name is required", err.Error())
	})
}

func TestCompanyUpdate(t *testing.T) {
	t.Run("absent fields left untouched", func(t *testing.T) {
		got, err := CompanyUpdate(&models.CompanyUpdate{ID: 1})
		require.NoError(t, err)
		assert.Nil(t, got.CompanyName)
		assert.Nil(t, got.GSTNo)
		assert.Nil(t, got.StateCode)
	})

	t.Run("present fields canonicalized", func(t *testing.T) {
		got, err := CompanyUpdate(&models.CompanyUpdate{
			ID:          1,
			CompanyName: utils.Ptr("  New Name  "),
			StateCode:   utils.Ptr(" 29 "),
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", *got.CompanyName)
		assert.Equal(t, "29", *got.StateCode)
	})

	tests := []struct {
		name    string
		update  models.CompanyUpdate
		message string
	}{
		{
			name:    "empty name",
			update:  models.CompanyUpdate{ID: 1, CompanyName: utils.Ptr("  ")},
			message: "Company name cannot be empty",
		},
		{
			name:    "empty gst",
			update:  models.CompanyUpdate{ID: 1, GSTNo: utils.Ptr("")},
			message: "GST number cannot be empty",
		},
		{
			name:    "malformed gst",
			update:  models.CompanyUpdate{ID: 1, GSTNo: utils.Ptr("not-a-gst")},
			message: "GST number must be 15 characters and follow GST format",
		},
		{
			name:    "empty state code",
			update:  models.CompanyUpdate{ID: 1, StateCode: utils.Ptr(" ")},
			message: "State code cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompanyUpdate(&tt.update)
			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrInvalidInput)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCategoryCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := CategoryCreate(models.CreateCategory{Name: "  Wholesale  "})
		require.NoError(t, err)
		assert.Equal(t, "Wholesale", got.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := CategoryCreate(models.CreateCategory{Name: ""})
		require.Error(t, err)
		assert.Equal(t, "Category name is required", err.Error())
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := CategoryCreate(models.CreateCategory{Name: strings.Repeat("x", 101)})
		require.Error(t, err)
		assert.Equal(t, "Category name must be 100 characters or less", err.Error())
	})
}

func TestCategoryUpdate(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := CategoryUpdate(&models.CategoryUpdate{ID: 1, Name: utils.Ptr("  ")})
		require.Error(t, err)
		assert.Equal(t, "Category name cannot be empty", err.Error())
	})

	t.Run("absent name ok", func(t *testing.T) {
		_, err := CategoryUpdate(&models.CategoryUpdate{ID: 1})
		assert.NoError(t, err)
	})
}

func TestCustomerCreate(t *testing.T) {
	valid := models.CreateCustomer{
		ReportCustomer: "Acme Retail",
		TallyCustomer:  "Acme Retail (Tally)",
		CategoryID:     1,
	}

	t.Run("gst absent succeeds", func(t *testing.T) {
		_, err := CustomerCreate(valid)
		assert.NoError(t, err)
	})

	t.Run("gst empty after trim succeeds", func(t *testing.T) {
		in := valid
		in.GSTNo = utils.Ptr("   ")
		got, err := CustomerCreate(in)
		require.NoError(t, err)
		assert.Equal(t, "", *got.GSTNo)
	})

	t.Run("gst malformed rejected", func(t *testing.T) {
		in := valid
		in.GSTNo = utils.Ptr("bogus")
		_, err := CustomerCreate(in)
		require.Error(t, err)
		assert.Equal(t, "GST number must be 15 characters and follow GST format", err.Error())
	})

	t.Run("state code unvalidated", func(t *testing.T) {
		in := valid
		in.StateCode = utils.Ptr("anything goes")
		_, err := CustomerCreate(in)
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(*models.CreateCustomer)
		message string
	}{
		{
			name:    "empty report name",
			mutate:  func(c *models.CreateCustomer) { c.ReportCustomer = " " },
			message: "Report customer name is required",
		},
		{
			name:    "report name too long",
			mutate:  func(c *models.CreateCustomer) { c.ReportCustomer = strings.Repeat("r", 256) },
			message: "Report customer name must be 255 characters or less",
		},
		{
			name:    "empty tally name",
			mutate:  func(c *models.CreateCustomer) { c.TallyCustomer = "" },
			message: "Tally customer name is required",
		},
		{
			name:    "tally name too long",
			mutate:  func(c *models.CreateCustomer) { c.TallyCustomer = strings.Repeat("t", 256) },
			message: "Tally customer name must be 255 characters or less",
		},
		{
			name:    "zero category",
			mutate:  func(c *models.CreateCustomer) { c.CategoryID = 0 },
			message: "Category is required",
		},
		{
			name:    "negative category",
			mutate:  func(c *models.CreateCustomer) { c.CategoryID = -4 },
			message: "Category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := CustomerCreate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrInvalidInput)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCustomerUpdate(t *testing.T) {
	t.Run("empty update passes validation", func(t *testing.T) {
		// NoFieldsToUpdate is a service concern, not a validation one.
		_, err := CustomerUpdate(&models.CustomerUpdate{ID: 1})
		assert.NoError(t, err)
	})

	t.Run("gst cleared to empty succeeds", func(t *testing.T) {
		got, err := CustomerUpdate(&models.CustomerUpdate{ID: 1, GSTNo: utils.Ptr(" ")})
		require.NoError(t, err)
		assert.Equal(t, "", *got.GSTNo)
	})

	t.Run("zero category rejected", func(t *testing.T) {
		_, err := CustomerUpdate(&models.CustomerUpdate{ID: 1, CategoryID: utils.Ptr(int64(0))})
		require.Error(t, err)
		assert.Equal(t, "Category is required", err.Error())
	})

	t.Run("field error unwraps to invalid input", func(t *testing.T) {
		_, err := CustomerUpdate(&models.CustomerUpdate{ID: 1, ReportCustomer: utils.Ptr("")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, e.ErrInvalidInput))
		var fieldErr *e.FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "report_customer", fieldErr.Field)
	})
}
