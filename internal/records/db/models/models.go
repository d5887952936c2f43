// Package models contains the table models for the application, configured
// to work using GORM as the ORM. Hard deletes only: records carry no
// DeletedAt column.
package models

import (
	"time"
)

// Company represents a row in the companies table. The unique index on
// gst_no is the backstop for the GST uniqueness invariant; the repository
// still checks inside the write transaction so racing creates get a clean
// conflict error instead of a driver-specific one.
type Company struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CompanyName string `gorm:"size:255;not null"`
	GSTNo       string `gorm:"column:gst_no;size:15;not null;uniqueIndex"`
	StateCode   string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category represents a row in the categories table. Names are not unique.
type Category struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer represents a row in the customers table. gst_no and state_code
// are optional; category_id is a soft reference into categories.
type Customer struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	ReportCustomer string `gorm:"size:255;not null"`
	TallyCustomer  string `gorm:"size:255;not null"`
	GSTNo          string `gorm:"column:gst_no;size:15"`
	StateCode      string
	CategoryID     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
