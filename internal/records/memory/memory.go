// Package memory implements the record stores as in-process concurrent maps.
// Each entity kind is guarded by a single mutex: identity assignment, the
// Company GST uniqueness check and the write itself happen under one critical
// section, so no caller can observe a half-constructed record or a transient
// duplicate. Records are held by value and copied on the way in and out so no
// caller ever aliases internal state.
//
// It is the in-memory counterpart of the gorm-backed db package and satisfies
// the same controller storage interfaces.
package memory

import (
	"time"
)

// Store groups one store per entity kind behind a single constructor.
type Store struct {
	Companies  *CompanyStore
	Categories *CategoryStore
	Customers  *CustomerStore
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		Companies:  NewCompanyStore(),
		Categories: NewCategoryStore(),
		Customers:  NewCustomerStore(),
	}
}

// stampAfter returns the current time, bumped if needed so the result is
// strictly after prev. Keeps updated_at monotonic per record even on coarse
// clocks.
func stampAfter(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
