package company

import (
	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Validator gates company creation. It reads persisted state through the
// repository but never writes; check order is fixed: parent existence,
// code uniqueness, country code format, external reference pair,
// system-company singleton, date range.
type Validator struct {
	repo Repository
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

// ValidateCreate returns a company populated from the request with
// defaults applied, or the first failing check's error.
func (v *Validator) ValidateCreate(dto CreateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Company{}

	if dto.ParentCompanyID != nil {
		exists, err := v.repo.ExistsByID(*dto.ParentCompanyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ParentNotFoundError(*dto.ParentCompanyID)
		}
		c.ParentCompanyID = dto.ParentCompanyID
	}

	exists, err := v.repo.ExistsByCode(dto.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, DuplicateCodeError(dto.Code)
	}
	c.Code = dto.Code

	if dto.CountryCode != nil {
		if !validation.IsValidAlpha2CountryCode(*dto.CountryCode) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		c.CountryCode = dto.CountryCode
	}

	extRef := entity.ExternalRef{System: dto.ExternalSystem, ID: dto.ExternalID}
	if extRef.IsPartial() {
		return nil, errors.NewValidationFieldError("external_id",
			"external_system and external_id must be supplied together", errors.ErrCodePartialExternalRef)
	}
	if extRef.IsSet() {
		exists, err := v.repo.ExistsByExternalRef(*dto.ExternalSystem, *dto.ExternalID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, DuplicateExternalRefError(*dto.ExternalSystem, *dto.ExternalID)
		}
		c.ExternalRef = extRef
	}

	if dto.IsSystemCompany {
		exists, err := v.repo.ExistsSystemCompany()
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, SystemCompanyExistsError()
		}
		c.IsSystemCompany = true
	}

	c.ValidFrom = DefaultValidFrom
	if dto.ValidFrom != nil {
		c.ValidFrom = *dto.ValidFrom
	}
	c.ValidTo = DefaultValidTo
	if dto.ValidTo != nil {
		c.ValidTo = *dto.ValidTo
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return nil, errors.NewValidationFieldError("valid_to",
			"valid_to must not be before valid_from", errors.ErrCodeInvalidDateRange)
	}

	c.Name = dto.Name
	c.LogoURL = dto.LogoURL

	return c, nil
}
