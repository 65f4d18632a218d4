package company

import (
	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Company is an organizational unit. Companies form a tree through the
// parent reference; cycles are treated as caller error.
type Company struct {
	entity.Record   `gorm:"embedded"`
	Code            string      `json:"code" gorm:"column:code;not null;size:100"`
	Name            string      `json:"name" gorm:"column:name;not null;size:300"`
	ParentCompanyID *uuid.UUID  `json:"parent_company_id,omitempty" gorm:"column:parent_company_id;type:uuid"`
	LogoURL         *string     `json:"logo_url,omitempty" gorm:"column:logo_url"`
	ValidFrom       entity.Date `json:"valid_from" gorm:"column:valid_from;not null"`
	ValidTo         entity.Date `json:"valid_to" gorm:"column:valid_to;not null"`
	IsSystemCompany bool        `json:"is_system_company" gorm:"column:is_system_company;not null"`
}

func (Company) TableName() string {
	return "company"
}

const (
	MaxCodeLength = 100
	MaxNameLength = 300
)

// Validity bounds applied when the caller omits the date range.
var (
	DefaultValidFrom = entity.NewDate(1900, 1, 1)
	DefaultValidTo   = entity.NewDate(9999, 1, 1)
)

func NotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("company not found", errors.ErrCodeCompanyNotFound).
		WithEntity("Company", id)
}

func ParentNotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("parent company not found", errors.ErrCodeParentCompanyNotFound).
		WithEntity("Company", id)
}

func DuplicateCodeError(code string) *errors.AppError {
	return errors.NewConflictError("company code already in use", errors.ErrCodeDuplicateCompanyCode).
		WithDetails(map[string]interface{}{"entity": "Company", "field": "code", "value": code})
}

func DuplicateExternalRefError(system, externalID string) *errors.AppError {
	return errors.NewConflictError("external reference already in use", errors.ErrCodeDuplicateExternalRef).
		WithDetails(map[string]interface{}{
			"entity":          "Company",
			"external_system": system,
			"external_id":     externalID,
		})
}

func SystemCompanyExistsError() *errors.AppError {
	return errors.NewConflictError("a system company already exists", errors.ErrCodeSystemCompanyExists).
		WithDetails(map[string]interface{}{"entity": "Company", "field": "is_system_company"})
}

func AlreadyDeletedError(id uuid.UUID) *errors.AppError {
	return errors.NewGoneError("company already deleted", errors.ErrCodeAlreadyDeleted).
		WithEntity("Company", id)
}

func VersionConflictError(id uuid.UUID) *errors.AppError {
	return errors.NewConflictError("company was modified concurrently", errors.ErrCodeVersionConflict).
		WithEntity("Company", id)
}
