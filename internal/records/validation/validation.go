// Package validation holds the pure field validators for the business
// records. Validators have no side effects and no I/O: they check a candidate
// payload against the format rules, fail fast on the first offending field,
// and return the canonicalized (trimmed) payload on success.
//
// Length limits are checked against the untrimmed input, so a value padded
// with whitespace past the limit is rejected even when the trimmed result
// would fit. Trimming happens only after all checks pass.
package validation

import (
	"strings"
	"unicode/utf8"

	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/models"
)

const (
	maxNameLen     = 255
	maxCategoryLen = 100
)

// CompanyCreate validates a full company-create payload.
// Field order: company_name, gst_no, state_code.
func CompanyCreate(in models.CreateCompany) (models.CreateCompany, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return in, e.Invalid("company_name", "Company name is required")
	}
	if utf8.RuneCountInString(in.CompanyName) > maxNameLen {
		return in, e.Invalid("company_name", "Company name must be 255 characters or less")
	}
	if strings.TrimSpace(in.GSTNo) == "" {
		return in, e.Invalid("gst_no", "GST number is required")
	}
	if !IsValidGST(in.GSTNo) {
		return in, e.Invalid("gst_no", "GST number must be 15 characters and follow GST format")
	}
	if strings.TrimSpace(in.StateCode) == "" {
		return in, e.Invalid("state_code", "State code is required")
	}

	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.GSTNo = strings.TrimSpace(in.GSTNo)
	in.StateCode = strings.TrimSpace(in.StateCode)
	return in, nil
}

// CompanyUpdate validates a partial company update. Absent fields are left
// untouched; present fields must individually pass the create rules.
func CompanyUpdate(in *models.CompanyUpdate) (*models.CompanyUpdate, error) {
	if in.CompanyName != nil {
		if strings.TrimSpace(*in.CompanyName) == "" {
			return in, e.Invalid("company_name", "Company name cannot be empty")
		}
		if utf8.RuneCountInString(*in.CompanyName) > maxNameLen {
			return in, e.Invalid("company_name", "Company name must be 255 characters or less")
		}
	}
	if in.GSTNo != nil {
		if strings.TrimSpace(*in.GSTNo) == "" {
			return in, e.Invalid("gst_no", "GST number cannot be empty")
		}
		if !IsValidGST(*in.GSTNo) {
			return in, e.Invalid("gst_no", "GST number must be 15 characters and follow GST format")
		}
	}
	if in.StateCode != nil && strings.TrimSpace(*in.StateCode) == "" {
		return in, e.Invalid("state_code", "State code cannot be empty")
	}

	trimPtr(in.CompanyName)
	trimPtr(in.GSTNo)
	trimPtr(in.StateCode)
	return in, nil
}

// CategoryCreate validates a full category-create payload.
func CategoryCreate(in models.CreateCategory) (models.CreateCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return in, e.Invalid("name", "Category name is required")
	}
	if utf8.RuneCountInString(in.Name) > maxCategoryLen {
		return in, e.Invalid("name", "Category name must be 100 characters or less")
	}
	in.Name = strings.TrimSpace(in.Name)
	return in, nil
}

// CategoryUpdate validates a partial category update.
func CategoryUpdate(in *models.CategoryUpdate) (*models.CategoryUpdate, error) {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return in, e.Invalid("name", "Category name cannot be empty")
		}
		if utf8.RuneCountInString(*in.Name) > maxCategoryLen {
			return in, e.Invalid("name", "Category name must be 100 characters or less")
		}
	}
	trimPtr(in.Name)
	return in, nil
}

// CustomerCreate validates a full customer-create payload.
// Field order: report_customer, tally_customer, gst_no, category_id.
// The GST number is optional: absent or empty-after-trim values are exempt
// from the format check. The state code is optional and unvalidated.
func CustomerCreate(in models.CreateCustomer) (models.CreateCustomer, error) {
	if strings.TrimSpace(in.ReportCustomer) == "" {
		return in, e.Invalid("report_customer", "Report customer name is required")
	}
	if utf8.RuneCountInString(in.ReportCustomer) > maxNameLen {
		return in, e.Invalid("report_customer", "Report customer name must be 255 characters or less")
	}
	if strings.TrimSpace(in.TallyCustomer) == "" {
		return in, e.Invalid("tally_customer", "Tally customer name is required")
	}
	if utf8.RuneCountInString(in.TallyCustomer) > maxNameLen {
		return in, e.Invalid("tally_customer", "Tally customer name must be 255 characters or less")
	}
	if in.GSTNo != nil && strings.TrimSpace(*in.GSTNo) != "" && !IsValidGST(*in.GSTNo) {
		return in, e.Invalid("gst_no", "GST number must be 15 characters and follow GST format")
	}
	if in.CategoryID <= 0 {
		return in, e.Invalid("category_id", "Category is required")
	}

	in.ReportCustomer = strings.TrimSpace(in.ReportCustomer)
	in.TallyCustomer = strings.TrimSpace(in.TallyCustomer)
	trimPtr(in.GSTNo)
	trimPtr(in.StateCode)
	return in, nil
}

// CustomerUpdate validates a partial customer update.
func CustomerUpdate(in *models.CustomerUpdate) (*models.CustomerUpdate, error) {
	if in.ReportCustomer != nil {
		if strings.TrimSpace(*in.ReportCustomer) == "" {
			return in, e.Invalid("report_customer", "Report customer name cannot be empty")
		}
		if utf8.RuneCountInString(*in.ReportCustomer) > maxNameLen {
			return in, e.Invalid("report_customer", "Report customer name must be 255 characters or less")
		}
	}
	if in.TallyCustomer != nil {
		if strings.TrimSpace(*in.TallyCustomer) == "" {
			return in, e.Invalid("tally_customer", "Tally customer name cannot be empty")
		}
		if utf8.RuneCountInString(*in.TallyCustomer) > maxNameLen {
			return in, e.Invalid("tally_customer", "Tally customer name must be 255 characters or less")
		}
	}
	if in.GSTNo != nil && strings.TrimSpace(*in.GSTNo) != "" && !IsValidGST(*in.GSTNo) {
		return in, e.Invalid("gst_no", "GST number must be 15 characters and follow GST format")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return in, e.Invalid("category_id", "Category is required")
	}

	trimPtr(in.ReportCustomer)
	trimPtr(in.TallyCustomer)
	trimPtr(in.GSTNo)
	trimPtr(in.StateCode)
	return in, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
