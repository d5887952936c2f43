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

// CustomerStore is the in-memory customer set. Customer GST numbers carry no
// uniqueness constraint, and category_id is a soft reference.
type CustomerStore struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]models.Customer
}

// NewCustomerStore returns an empty CustomerStore.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{records: make(map[int64]models.Customer)}
}

// CreateCustomer assigns the next identity and inserts the record. The
// Category snapshot is never persisted; read operations attach it.
func (s *CustomerStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	now := time.Now().UTC()
	c.ID = s.seq
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := *c
	stored.Category = nil
	s.records[c.ID] = stored
	return nil
}

// GetCustomer returns a copy of the record with the given identity.
func (s *CustomerStore) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &rec, nil
}

// ListCustomers returns all records, newest first.
func (s *CustomerStore) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(models.Customer) bool { return true }), nil
}

// UpdateCustomer applies only the supplied fields, stamps updated_at and
// returns the full updated record.
func (s *CustomerStore) UpdateCustomer(ctx context.Context, u *models.CustomerUpdate) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[u.ID]
	if !ok {
		return nil, e.ErrNotFound
	}
	if u.ReportCustomer != nil {
		rec.ReportCustomer = *u.ReportCustomer
	}
	if u.TallyCustomer != nil {
		rec.TallyCustomer = *u.TallyCustomer
	}
	if u.GSTNo != nil {
		rec.GSTNo = *u.GSTNo
	}
	if u.StateCode != nil {
		rec.StateCode = *u.StateCode
	}
	if u.CategoryID != nil {
		rec.CategoryID = *u.CategoryID
	}
	rec.UpdatedAt = stampAfter(rec.UpdatedAt)
	s.records[u.ID] = rec
	return &rec, nil
}

// DeleteCustomer removes the record permanently.
func (s *CustomerStore) DeleteCustomer(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return e.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// SearchCustomers matches the query case-insensitively against both customer
// names and the GST number.
func (s *CustomerStore) SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(c models.Customer) bool {
		return strings.Contains(strings.ToLower(c.ReportCustomer), q) ||
			strings.Contains(strings.ToLower(c.TallyCustomer), q) ||
			strings.Contains(strings.ToLower(c.GSTNo), q)
	}), nil
}

func (s *CustomerStore) collect(keep func(models.Customer) bool) []*models.Customer {
	out := make([]*models.Customer, 0, len(s.records))
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
