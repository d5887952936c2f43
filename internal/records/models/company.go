// Package models defines the core domain models for the business records
// managed by the backend: Company, Category and Customer. It includes the
// create payloads submitted by the UI and the partial-update structs.
package models

import (
	"time"
)

// Company defines the domain model for a GST-registered company.
type Company struct {
	// ID is the storage-assigned identity of the company.
	ID int64 `json:"id"`
	// CompanyName is the registered name, stored trimmed.
	CompanyName string `json:"company_name"`
	// GSTNo is the 15-character GST identifier, globally unique.
	GSTNo string `json:"gst_no"`
	// StateCode is the jurisdiction code, stored as free text.
	StateCode string `json:"state_code"`
	// CreatedAt records when the company was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt records the last successful mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompany is the payload for creating a Company. All fields required.
type CreateCompany struct {
	CompanyName string `json:"company_name"`
	GSTNo       string `json:"gst_no"`
	StateCode   string `json:"state_code"`
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates.
type CompanyUpdate struct {
	// ID is the identity of the company to update.
	ID int64 `json:"id"`
	// CompanyName is the new name, if supplied.
	CompanyName *string `json:"company_name,omitempty"`
	// GSTNo is the new GST number, if supplied.
	GSTNo *string `json:"gst_no,omitempty"`
	// StateCode is the new state code, if supplied.
	StateCode *string `json:"state_code,omitempty"`
}

// HasChanges reports whether the update carries at least one field.
func (u *CompanyUpdate) HasChanges() bool {
	return u.CompanyName != nil || u.GSTNo != nil || u.StateCode != nil
}
