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

// CreateCustomer inserts a new customer and writes the assigned identity and
// timestamps back into c. The Category snapshot is never persisted.
func (r *Repository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	row := dbmodels.Customer{
		ReportCustomer: c.ReportCustomer,
		TallyCustomer:  c.TallyCustomer,
		GSTNo:          c.GSTNo,
		StateCode:      c.StateCode,
		CategoryID:     c.CategoryID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*c = *customerToDomain(&row)
	return nil
}

// GetCustomer retrieves a customer by identity.
func (r *Repository) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var row dbmodels.Customer
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return customerToDomain(&row), nil
}

// ListCustomers returns all customers, most recently created first.
func (r *Repository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	var rows []dbmodels.Customer
	result := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return customersToDomain(rows), nil
}

// UpdateCustomer applies only the supplied fields and returns the full
// updated record.
func (r *Repository) UpdateCustomer(ctx context.Context, u *models.CustomerUpdate) (*models.Customer, error) {
	var row dbmodels.Customer
	err := r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.First(&row, "id = ?", u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if u.ReportCustomer != nil {
			updates["report_customer"] = *u.ReportCustomer
		}
		if u.TallyCustomer != nil {
			updates["tally_customer"] = *u.TallyCustomer
		}
		if u.GSTNo != nil {
			updates["gst_no"] = *u.GSTNo
		}
		if u.StateCode != nil {
			updates["state_code"] = *u.StateCode
		}
		if u.CategoryID != nil {
			updates["category_id"] = *u.CategoryID
		}
		if err := tx.db.Model(&row).Updates(updates).Error; err != nil {
			return err
		}
		return tx.db.First(&row, "id = ?", u.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return customerToDomain(&row), nil
}

// DeleteCustomer removes a customer permanently.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// SearchCustomers matches the query case-insensitively against both customer
// names and the GST number.
func (r *Repository) SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	pat := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []dbmodels.Customer
	result := r.db.WithContext(ctx).
		Where("lower(report_customer) LIKE ? OR lower(tally_customer) LIKE ? OR lower(gst_no) LIKE ?",
			pat, pat, pat).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return customersToDomain(rows), nil
}

func customerToDomain(row *dbmodels.Customer) *models.Customer {
	return &models.Customer{
		ID:             row.ID,
		ReportCustomer: row.ReportCustomer,
		TallyCustomer:  row.TallyCustomer,
		GSTNo:          row.GSTNo,
		StateCode:      row.StateCode,
		CategoryID:     row.CategoryID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func customersToDomain(rows []dbmodels.Customer) []*models.Customer {
	out := make([]*models.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, customerToDomain(&rows[i]))
	}
	return out
}
