package site

import (
	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// SiteType classifies a physical location.
type SiteType string

const (
	SiteTypeOffice    SiteType = "OFFICE"
	SiteTypeFactory   SiteType = "FACTORY"
	SiteTypeWarehouse SiteType = "WAREHOUSE"
)

func (t SiteType) Valid() bool {
	switch t {
	case SiteTypeOffice, SiteTypeFactory, SiteTypeWarehouse:
		return true
	}
	return false
}

// Site is a physical location belonging to exactly one company. It is not
// a party, so it carries its own identifier plus the shared audit block
// rather than the full base record.
type Site struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID `json:"company_id" gorm:"column:company_id;type:uuid;not null"`
	SiteCode     string    `json:"site_code" gorm:"column:site_code"`
	SiteName     string    `json:"site_name" gorm:"column:site_name;size:300"`
	SiteType     SiteType  `json:"site_type" gorm:"column:site_type;not null"`
	IsDefault    bool      `json:"is_default" gorm:"column:is_default;not null"`
	entity.Audit `gorm:"embedded"`
}

func (Site) TableName() string {
	return "site"
}

func NotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("site not found", errors.ErrCodeSiteNotFound).
		WithEntity("Site", id)
}

func CompanyNotFoundError(companyID uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("company not found for the site", errors.ErrCodeCompanyNotFound).
		WithEntity("Company", companyID)
}

func AlreadyDeletedError(id uuid.UUID) *errors.AppError {
	return errors.NewGoneError("site already deleted", errors.ErrCodeAlreadyDeleted).
		WithEntity("Site", id)
}

func VersionConflictError(id uuid.UUID) *errors.AppError {
	return errors.NewConflictError("site was modified concurrently", errors.ErrCodeVersionConflict).
		WithEntity("Site", id)
}
