package company

import (
	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/core/patch"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
)

// CreateCompanyDTO is the request payload for creating a company.
type CreateCompanyDTO struct {
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	ParentCompanyID *uuid.UUID   `json:"parent_company_id,omitempty"`
	CountryCode     *string      `json:"country_code,omitempty"`
	ExternalSystem  *string      `json:"external_system,omitempty"`
	ExternalID      *string      `json:"external_id,omitempty"`
	LogoURL         *string      `json:"logo_url,omitempty"`
	ValidFrom       *entity.Date `json:"valid_from,omitempty"`
	ValidTo         *entity.Date `json:"valid_to,omitempty"`
	IsSystemCompany bool         `json:"is_system_company"`
}

// Validate checks field shape only; rules that need persisted state live
// in the Validator.
func (dto CreateCompanyDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("code", dto.Code).Required().MaxLength(MaxCodeLength)
	v.Field("name", dto.Name).Required().MaxLength(MaxNameLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateCompanyDTO carries full-update semantics: every present field
// overwrites the stored value, absent optional fields are left untouched.
type UpdateCompanyDTO struct {
	Name            *string      `json:"name,omitempty"`
	CountryCode     *string      `json:"country_code,omitempty"`
	ExternalSystem  *string      `json:"external_system,omitempty"`
	ExternalID      *string      `json:"external_id,omitempty"`
	LogoURL         *string      `json:"logo_url,omitempty"`
	ValidFrom       *entity.Date `json:"valid_from,omitempty"`
	ValidTo         *entity.Date `json:"valid_to,omitempty"`
	IsSystemCompany *bool        `json:"is_system_company,omitempty"`
}

func (dto UpdateCompanyDTO) Validate() error {
	if dto.Name != nil && validation.IsBlank(*dto.Name) {
		return errors.NewValidationFieldError("name", "name cannot be blank", errors.ErrCodeValidationFailed)
	}
	if dto.Name != nil && len(*dto.Name) > MaxNameLength {
		return errors.NewValidationFieldError("name", "name too long", errors.ErrCodeValidationFailed)
	}
	return nil
}

// PatchCompanyDTO distinguishes absent keys from explicit nulls: an
// explicit null clears a nullable field, an absent key changes nothing.
type PatchCompanyDTO struct {
	Name            patch.Field[string]      `json:"name"`
	CountryCode     patch.Field[string]      `json:"country_code"`
	ExternalSystem  patch.Field[string]      `json:"external_system"`
	ExternalID      patch.Field[string]      `json:"external_id"`
	LogoURL         patch.Field[string]      `json:"logo_url"`
	ValidFrom       patch.Field[entity.Date] `json:"valid_from"`
	ValidTo         patch.Field[entity.Date] `json:"valid_to"`
	IsSystemCompany patch.Field[bool]        `json:"is_system_company"`
}

func (dto PatchCompanyDTO) Validate() error {
	if dto.Name.IsNull() {
		return errors.NewValidationFieldError("name", "name cannot be null", errors.ErrCodeValidationFailed)
	}
	if name, ok := dto.Name.Value(); ok {
		if validation.IsBlank(name) {
			return errors.NewValidationFieldError("name", "name cannot be blank", errors.ErrCodeValidationFailed)
		}
		if len(name) > MaxNameLength {
			return errors.NewValidationFieldError("name", "name too long", errors.ErrCodeValidationFailed)
		}
	}
	if dto.IsSystemCompany.IsNull() {
		return errors.NewValidationFieldError("is_system_company", "is_system_company cannot be null", errors.ErrCodeValidationFailed)
	}
	if dto.ValidFrom.IsNull() || dto.ValidTo.IsNull() {
		return errors.NewValidationFieldError("valid_from", "validity dates cannot be null", errors.ErrCodeValidationFailed)
	}
	return nil
}
