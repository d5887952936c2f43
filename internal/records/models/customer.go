package models

import (
	"time"
)

// Customer defines the domain model for a customer. A customer carries two
// independent display names: the one used on reports and the one used for
// Tally exports.
type Customer struct {
	ID int64 `json:"id"`
	// ReportCustomer is the display name used on reports.
	ReportCustomer string `json:"report_customer"`
	// TallyCustomer is the display name used for Tally exports.
	TallyCustomer string `json:"tally_customer"`
	// GSTNo is optional; empty means the customer is unregistered.
	GSTNo     string `json:"gst_no"`
	StateCode string `json:"state_code"`
	// CategoryID references a Category. Referential existence is not
	// enforced by storage; see CustomerService.
	CategoryID int64 `json:"category_id"`
	// Category is a denormalized snapshot of the referenced category,
	// attached by read operations. Never independently mutated.
	Category  *Category `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomer is the payload for creating a Customer. GSTNo and StateCode
// are optional.
type CreateCustomer struct {
	ReportCustomer string  `json:"report_customer"`
	TallyCustomer  string  `json:"tally_customer"`
	GSTNo          *string `json:"gst_no,omitempty"`
	StateCode      *string `json:"state_code,omitempty"`
	CategoryID     int64   `json:"category_id"`
}

// CustomerUpdate represents the fields that can be updated for a Customer.
type CustomerUpdate struct {
	ID             int64   `json:"id"`
	ReportCustomer *string `json:"report_customer,omitempty"`
	TallyCustomer  *string `json:"tally_customer,omitempty"`
	GSTNo          *string `json:"gst_no,omitempty"`
	StateCode      *string `json:"state_code,omitempty"`
	CategoryID     *int64  `json:"category_id,omitempty"`
}

// HasChanges reports whether the update carries at least one field.
func (u *CustomerUpdate) HasChanges() bool {
	return u.ReportCustomer != nil || u.TallyCustomer != nil ||
		u.GSTNo != nil || u.StateCode != nil || u.CategoryID != nil
}
