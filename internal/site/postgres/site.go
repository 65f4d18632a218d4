package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal/site"
)

// SiteRepository implements the site.Repository interface using GORM
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) site.Repository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(s *site.Site) error {
	return r.db.Create(s).Error
}

// GetByID retrieves a site by id, soft-deleted rows included.
func (r *SiteRepository) GetByID(id uuid.UUID) (*site.Site, error) {
	var s site.Site
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, site.NotFoundError(id)
		}
		return nil, err
	}
	return &s, nil
}

// GetByCompanyID lists the sites of one company, excluding soft-deleted rows.
func (r *SiteRepository) GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]*site.Site, error) {
	var sites []*site.Site
	err := r.db.Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("site_code ASC").
		Limit(limit).
		Offset(offset).
		Find(&sites).Error
	return sites, err
}

// UpdateVersioned writes the full row conditioned on the version the
// caller read; zero rows affected means a concurrent writer won.
func (r *SiteRepository) UpdateVersioned(s *site.Site, expectedVersion int64) error {
	s.Version = expectedVersion + 1
	res := r.db.Model(&site.Site{}).
		Where("id = ? AND version = ?", s.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(s)
	if res.Error != nil {
		s.Version = expectedVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.Version = expectedVersion
		return site.VersionConflictError(s.ID)
	}
	return nil
}

// ClearDefaultForCompany unsets is_default on every other site of the
// company, so at most one site stays the default. The clear is a
// persisted mutation, so the version counter advances with it.
func (r *SiteRepository) ClearDefaultForCompany(companyID uuid.UUID, exceptID uuid.UUID) error {
	return r.db.Model(&site.Site{}).
		Where("company_id = ? AND id <> ? AND is_default = ?", companyID, exceptID, true).
		Updates(map[string]interface{}{
			"is_default": false,
			"version":    gorm.Expr("version + 1"),
		}).Error
}
