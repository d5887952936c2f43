package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/models"
	"github.com/gartstein/gstdesk/internal/records/validation"
	"go.uber.org/zap"
)

// CategoryService provides methods to manage categories.
type CategoryService struct {
	storage  CategoryStorage
	producer EventProducer
	logger   *zap.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(storage CategoryStorage, producer EventProducer, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		storage:  storage,
		producer: producer,
		logger:   logger.Named("category_service"),
	}
}

// CreateCategory validates the payload and persists a new Category.
func (s *CategoryService) CreateCategory(ctx context.Context, in models.CreateCategory) (*models.Category, error) {
	in, err := validation.CategoryCreate(in)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name}
	if err := s.storage.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.producer.Produce(events.CategoryCreated, category.ID, category)
	return category, nil
}

// GetCategory retrieves a Category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.storage.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories, most recently created first.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory validates and applies a partial update.
func (s *CategoryService) UpdateCategory(ctx context.Context, update *models.CategoryUpdate) (*models.Category, error) {
	if !update.HasChanges() {
		return nil, e.ErrNoFieldsToUpdate
	}
	update, err := validation.CategoryUpdate(update)
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateCategory(ctx, update)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.producer.Produce(events.CategoryUpdated, updated.ID, updated)
	return updated, nil
}

// DeleteCategory removes a Category by ID. Customers referencing it keep
// their category_id; there is no cascade.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.producer.Produce(events.CategoryDeleted, id, nil)
	return nil
}

// SearchCategories matches the query against the category name.
func (s *CategoryService) SearchCategories(ctx context.Context, query string) ([]*models.Category, error) {
	categories, err := s.storage.SearchCategories(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, nil
}

// ValidateCreate runs the create validation without persisting.
func (s *CategoryService) ValidateCreate(in models.CreateCategory) (models.CreateCategory, error) {
	return validation.CategoryCreate(in)
}

// ValidateUpdate runs the update validation without persisting.
func (s *CategoryService) ValidateUpdate(update *models.CategoryUpdate) (*models.CategoryUpdate, error) {
	return validation.CategoryUpdate(update)
}
