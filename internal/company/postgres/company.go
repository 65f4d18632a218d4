package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal/company"
)

// CompanyRepository implements the company.Repository interface using GORM
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{db: db}
}

// Create saves a new company. When the system-company flag is set, the
// singleton rule is re-checked inside the insert transaction so two
// concurrent creators cannot both win; the partial unique index on
// is_system_company backs this up at the database level.
func (r *CompanyRepository) Create(c *company.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if c.IsSystemCompany {
			var n int64
			if err := tx.Model(&company.Company{}).
				Where("is_system_company = ?", true).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return company.SystemCompanyExistsError()
			}
		}
		return tx.Create(c).Error
	})
}

// GetByID retrieves a company by id, soft-deleted rows included.
func (r *CompanyRepository) GetByID(id uuid.UUID) (*company.Company, error) {
	var c company.Company
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, company.NotFoundError(id)
		}
		return nil, err
	}
	return &c, nil
}

// GetAll lists companies excluding soft-deleted rows.
func (r *CompanyRepository) GetAll(limit, offset int) ([]*company.Company, error) {
	var companies []*company.Company
	err := r.db.Where("deleted_at IS NULL").
		Order("code ASC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	return companies, err
}

// UpdateVersioned writes the full row conditioned on the version the
// caller read. Zero rows affected means a concurrent writer advanced the
// version first and the update is rejected.
func (r *CompanyRepository) UpdateVersioned(c *company.Company, expectedVersion int64) error {
	c.Version = expectedVersion + 1
	res := r.db.Model(&company.Company{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(c)
	if res.Error != nil {
		c.Version = expectedVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		c.Version = expectedVersion
		return company.VersionConflictError(c.ID)
	}
	return nil
}

func (r *CompanyRepository) ExistsByID(id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.Model(&company.Company{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CompanyRepository) ExistsByCode(code string) (bool, error) {
	var n int64
	err := r.db.Model(&company.Company{}).Where("code = ?", code).Count(&n).Error
	return n > 0, err
}

// ExistsByExternalRef checks the alternate key among non-deleted rows.
func (r *CompanyRepository) ExistsByExternalRef(system, externalID string) (bool, error) {
	var n int64
	err := r.db.Model(&company.Company{}).
		Where("external_system = ? AND external_id = ? AND deleted_at IS NULL", system, externalID).
		Count(&n).Error
	return n > 0, err
}

func (r *CompanyRepository) ExistsSystemCompany() (bool, error) {
	n, err := r.CountSystemCompanies()
	return n > 0, err
}

func (r *CompanyRepository) CountSystemCompanies() (int64, error) {
	var n int64
	err := r.db.Model(&company.Company{}).Where("is_system_company = ?", true).Count(&n).Error
	return n, err
}
