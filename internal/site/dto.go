package site

import (
	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/patch"
)

const MaxNameLength = 300

// CreateSiteDTO is the request payload for creating a site under a company.
type CreateSiteDTO struct {
	CompanyID uuid.UUID `json:"company_id"`
	SiteCode  string    `json:"site_code"`
	SiteName  string    `json:"site_name"`
	SiteType  SiteType  `json:"site_type"`
	IsDefault bool      `json:"is_default"`
}

func (dto CreateSiteDTO) Validate() error {
	if dto.CompanyID == uuid.Nil {
		return errors.NewValidationFieldError("company_id", "company_id is required", errors.ErrCodeValidationFailed)
	}
	if dto.SiteType == "" {
		return errors.NewValidationFieldError("site_type", "site_type is required", errors.ErrCodeValidationFailed)
	}
	if !dto.SiteType.Valid() {
		return errors.NewValidationFieldError("site_type", "site_type must be one of OFFICE, FACTORY, WAREHOUSE", errors.ErrCodeValidationFailed)
	}
	v := validation.NewValidator()
	v.Field("site_name", dto.SiteName).MaxLength(MaxNameLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateSiteDTO carries full-update semantics over the mutable site fields.
type UpdateSiteDTO struct {
	SiteCode  *string   `json:"site_code,omitempty"`
	SiteName  *string   `json:"site_name,omitempty"`
	SiteType  *SiteType `json:"site_type,omitempty"`
	IsDefault *bool     `json:"is_default,omitempty"`
}

func (dto UpdateSiteDTO) Validate() error {
	if dto.SiteName != nil && len(*dto.SiteName) > MaxNameLength {
		return errors.NewValidationFieldError("site_name", "site_name too long", errors.ErrCodeValidationFailed)
	}
	if dto.SiteType != nil && !dto.SiteType.Valid() {
		return errors.NewValidationFieldError("site_type", "site_type must be one of OFFICE, FACTORY, WAREHOUSE", errors.ErrCodeValidationFailed)
	}
	return nil
}

// PatchSiteDTO distinguishes absent keys from explicit nulls.
type PatchSiteDTO struct {
	SiteCode  patch.Field[string]   `json:"site_code"`
	SiteName  patch.Field[string]   `json:"site_name"`
	SiteType  patch.Field[SiteType] `json:"site_type"`
	IsDefault patch.Field[bool]     `json:"is_default"`
}

func (dto PatchSiteDTO) Validate() error {
	if dto.SiteName.IsNull() {
		return errors.NewValidationFieldError("site_name", "site_name cannot be null", errors.ErrCodeValidationFailed)
	}
	if name, ok := dto.SiteName.Value(); ok && len(name) > MaxNameLength {
		return errors.NewValidationFieldError("site_name", "site_name too long", errors.ErrCodeValidationFailed)
	}
	if dto.SiteType.IsNull() {
		return errors.NewValidationFieldError("site_type", "site_type cannot be null", errors.ErrCodeValidationFailed)
	}
	if t, ok := dto.SiteType.Value(); ok && !t.Valid() {
		return errors.NewValidationFieldError("site_type", "site_type must be one of OFFICE, FACTORY, WAREHOUSE", errors.ErrCodeValidationFailed)
	}
	if dto.IsDefault.IsNull() {
		return errors.NewValidationFieldError("is_default", "is_default cannot be null", errors.ErrCodeValidationFailed)
	}
	return nil
}
