package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/models"
)

// CompanyStore is the in-memory company set. The mutex guards the identity
// counter, the GST uniqueness invariant and the map as one unit.
type CompanyStore struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]models.Company
}

// NewCompanyStore returns an empty CompanyStore.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{records: make(map[int64]models.Company)}
}

// CreateCompany assigns the next identity, stamps both timestamps with the
// same instant and inserts the record. The GST uniqueness check and the
// identity assignment are a single atomic step.
func (s *CompanyStore) CreateCompany(ctx context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.GSTNo == c.GSTNo {
			return e.ErrDuplicateGST
		}
	}

	s.seq++
	now := time.Now().UTC()
	c.ID = s.seq
	c.CreatedAt = now
	c.UpdatedAt = now
	s.records[c.ID] = *c
	return nil
}

// GetCompany returns a copy of the record with the given identity.
func (s *CompanyStore) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &rec, nil
}

// ListCompanies returns all records ordered by created_at descending, ties
// broken by identity descending.
func (s *CompanyStore) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(models.Company) bool { return true }), nil
}

// UpdateCompany applies only the supplied fields, re-checks GST uniqueness
// when the GST number actually changes, stamps updated_at and returns the
// full updated record.
func (s *CompanyStore) UpdateCompany(ctx context.Context, u *models.CompanyUpdate) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[u.ID]
	if !ok {
		return nil, e.ErrNotFound
	}

	if u.GSTNo != nil && *u.GSTNo != rec.GSTNo {
		for id, existing := range s.records {
			if id != u.ID && existing.GSTNo == *u.GSTNo {
				return nil, e.ErrDuplicateGST
			}
		}
	}

	if u.CompanyName != nil {
		rec.CompanyName = *u.CompanyName
	}
	if u.GSTNo != nil {
		rec.GSTNo = *u.GSTNo
	}
	if u.StateCode != nil {
		rec.StateCode = *u.StateCode
	}
	rec.UpdatedAt = stampAfter(rec.UpdatedAt)
	s.records[u.ID] = rec
	return &rec, nil
}

// DeleteCompany removes the record permanently.
func (s *CompanyStore) DeleteCompany(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return e.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// SearchCompanies matches the query case-insensitively against the company
// name, GST number and state code.
func (s *CompanyStore) SearchCompanies(ctx context.Context, query string) ([]*models.Company, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(c models.Company) bool {
		return strings.Contains(strings.ToLower(c.CompanyName), q) ||
			strings.Contains(strings.ToLower(c.GSTNo), q) ||
			strings.Contains(strings.ToLower(c.StateCode), q)
	}), nil
}

// collect copies out every record matching keep, newest first. Caller holds
// the lock.
func (s *CompanyStore) collect(keep func(models.Company) bool) []*models.Company {
	out := make([]*models.Company, 0, len(s.records))
	for _, rec := range s.records {
		if keep(rec) {
			rec := rec
			out = append(out, &rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
