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

// CategoryStore is the in-memory category set. Category names carry no
// uniqueness constraint.
type CategoryStore struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]models.Category
}

// NewCategoryStore returns an empty CategoryStore.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{records: make(map[int64]models.Category)}
}

// CreateCategory assigns the next identity and inserts the record.
func (s *CategoryStore) CreateCategory(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	now := time.Now().UTC()
	c.ID = s.seq
	c.CreatedAt = now
	c.UpdatedAt = now
	s.records[c.ID] = *c
	return nil
}

// GetCategory returns a copy of the record with the given identity.
func (s *CategoryStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &rec, nil
}

// ListCategories returns all records, newest first.
func (s *CategoryStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(models.Category) bool { return true }), nil
}

// UpdateCategory applies only the supplied fields, stamps updated_at and
// returns the full updated record.
func (s *CategoryStore) UpdateCategory(ctx context.Context, u *models.CategoryUpdate) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[u.ID]
	if !ok {
		return nil, e.ErrNotFound
	}
	if u.Name != nil {
		rec.Name = *u.Name
	}
	rec.UpdatedAt = stampAfter(rec.UpdatedAt)
	s.records[u.ID] = rec
	return &rec, nil
}

// DeleteCategory removes the record permanently. No cascade: customers
// referencing the category keep their category_id.
func (s *CategoryStore) DeleteCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return e.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// SearchCategories matches the query case-insensitively against the name.
func (s *CategoryStore) SearchCategories(ctx context.Context, query string) ([]*models.Category, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(c models.Category) bool {
		return strings.Contains(strings.ToLower(c.Name), q)
	}), nil
}

func (s *CategoryStore) collect(keep func(models.Category) bool) []*models.Category {
	out := make([]*models.Category, 0, len(s.records))
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
