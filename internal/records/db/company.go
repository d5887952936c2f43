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

// CreateCompany inserts a new company and writes the assigned identity and
// timestamps back into c. The GST uniqueness check runs inside the insert
// transaction; the unique index on gst_no is the backstop when two creates
// race across connections.
func (r *Repository) CreateCompany(ctx context.Context, c *models.Company) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		var count int64
		if err := tx.db.Model(&dbmodels.Company{}).
			Where("gst_no = ?", c.GSTNo).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return e.ErrDuplicateGST
		}

		row := dbmodels.Company{
			CompanyName: c.CompanyName,
			GSTNo:       c.GSTNo,
			StateCode:   c.StateCode,
		}
		if err := tx.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return e.ErrDuplicateGST
			}
			return err
		}
		*c = *companyToDomain(&row)
		return nil
	})
}

// GetCompany retrieves a company by identity.
func (r *Repository) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return companyToDomain(&row), nil
}

// ListCompanies returns all companies, most recently created first.
func (r *Repository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	var rows []dbmodels.Company
	result := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return companiesToDomain(rows), nil
}

// UpdateCompany applies only the supplied fields, re-checking GST uniqueness
// when the GST number actually changes, and returns the full updated record.
func (r *Repository) UpdateCompany(ctx context.Context, u *models.CompanyUpdate) (*models.Company, error) {
	var row dbmodels.Company
	err := r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.First(&row, "id = ?", u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.ErrNotFound
			}
			return err
		}

		if u.GSTNo != nil && *u.GSTNo != row.GSTNo {
			var count int64
			if err := tx.db.Model(&dbmodels.Company{}).
				Where("gst_no = ? AND id <> ?", *u.GSTNo, u.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return e.ErrDuplicateGST
			}
		}

		updates := map[string]interface{}{}
		if u.CompanyName != nil {
			updates["company_name"] = *u.CompanyName
		}
		if u.GSTNo != nil {
			updates["gst_no"] = *u.GSTNo
		}
		if u.StateCode != nil {
			updates["state_code"] = *u.StateCode
		}

		if err := tx.db.Model(&row).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return e.ErrDuplicateGST
			}
			return err
		}
		return tx.db.First(&row, "id = ?", u.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return companyToDomain(&row), nil
}

// DeleteCompany removes a company permanently.
func (r *Repository) DeleteCompany(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// SearchCompanies matches the query case-insensitively against the company
// name, GST number and state code.
func (r *Repository) SearchCompanies(ctx context.Context, query string) ([]*models.Company, error) {
	pat := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []dbmodels.Company
	result := r.db.WithContext(ctx).
		Where("lower(company_name) LIKE ? OR lower(gst_no) LIKE ? OR lower(state_code) LIKE ?",
			pat, pat, pat).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return companiesToDomain(rows), nil
}

func companyToDomain(row *dbmodels.Company) *models.Company {
	return &models.Company{
		ID:          row.ID,
		CompanyName: row.CompanyName,
		GSTNo:       row.GSTNo,
		StateCode:   row.StateCode,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func companiesToDomain(rows []dbmodels.Company) []*models.Company {
	out := make([]*models.Company, 0, len(rows))
	for i := range rows {
		out = append(out, companyToDomain(&rows[i]))
	}
	return out
}
