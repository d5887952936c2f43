package db

import (
	"context"
	"errors"
	"strings"

	dbmodels "github.com/gartstein/gstdesk/internal/records/db/models"
	e "github.com/gartstein/gstdesk/internal/records/errors"
	"github.com/gartstein/gstdesk/internal/records/models"
	"gorm.io/gorm"
)

// CreateCategory inserts a new category and writes the assigned identity and
// timestamps back into c.
func (r *Repository) CreateCategory(ctx context.Context, c *models.Category) error {
	row := dbmodels.Category{Name: c.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*c = *categoryToDomain(&row)
	return nil
}

// GetCategory retrieves a category by identity.
func (r *Repository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var row dbmodels.Category
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return categoryToDomain(&row), nil
}

// ListCategories returns all categories, most recently created first.
func (r *Repository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var rows []dbmodels.Category
	result := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return categoriesToDomain(rows), nil
}

// UpdateCategory applies only the supplied fields and returns the full
// updated record.
func (r *Repository) UpdateCategory(ctx context.Context, u *models.CategoryUpdate) (*models.Category, error) {
	var row dbmodels.Category
	err := r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.First(&row, "id = ?", u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if u.Name != nil {
			updates["name"] = *u.Name
		}
		if err := tx.db.Model(&row).Updates(updates).Error; err != nil {
			return err
		}
		return tx.db.First(&row, "id = ?", u.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return categoryToDomain(&row), nil
}

// DeleteCategory removes a category permanently. No cascade to customers.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// SearchCategories matches the query case-insensitively against the name.
func (r *Repository) SearchCategories(ctx context.Context, query string) ([]*models.Category, error) {
	pat := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []dbmodels.Category
	result := r.db.WithContext(ctx).
		Where("lower(name) LIKE ?", pat).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return categoriesToDomain(rows), nil
}

func categoryToDomain(row *dbmodels.Category) *models.Category {
	return &models.Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func categoriesToDomain(rows []dbmodels.Category) []*models.Category {
	out := make([]*models.Category, 0, len(rows))
	for i := range rows {
		out = append(out, categoryToDomain(&rows[i]))
	}
	return out
}
