package person

import (
	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Validator gates person creation. Field shape comes first, then the
// country code format, then the external reference pair and its
// uniqueness among live rows.
type Validator struct {
	repo Repository
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

func (v *Validator) ValidateCreate(dto CreatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Person{
		Profile: Profile{
			FirstName:       dto.FirstName,
			MiddleName:      dto.MiddleName,
			LastName:        dto.LastName,
			PreferredName:   dto.PreferredName,
			Gender:          dto.Gender,
			DateOfBirth:     dto.DateOfBirth,
			Title:           dto.Title,
			ProfileImageURL: dto.ProfileImageURL,
		},
	}

	if dto.CountryCode != nil {
		if !validation.IsValidAlpha2CountryCode(*dto.CountryCode) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		p.CountryCode = dto.CountryCode
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
		p.ExternalRef = extRef
	}

	return p, nil
}
