package person

import (
	"time"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/core/patch"
)

const (
	MaxNameLength   = 100
	MaxGenderLength = 20
)

// CreatePersonDTO is the request payload for creating a person.
type CreatePersonDTO struct {
	FirstName       string       `json:"first_name"`
	MiddleName      *string      `json:"middle_name,omitempty"`
	LastName        string       `json:"last_name"`
	PreferredName   *string      `json:"preferred_name,omitempty"`
	Gender          *string      `json:"gender,omitempty"`
	DateOfBirth     *entity.Date `json:"date_of_birth,omitempty"`
	Title           *Title       `json:"title,omitempty"`
	ProfileImageURL *string      `json:"profile_image_url,omitempty"`
	CountryCode     *string      `json:"country_code,omitempty"`
	ExternalSystem  *string      `json:"external_system,omitempty"`
	ExternalID      *string      `json:"external_id,omitempty"`
}

func (dto CreatePersonDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLength(MaxNameLength)
	v.Field("last_name", dto.LastName).Required().MaxLength(MaxNameLength)
	if dto.Gender != nil {
		v.Field("gender", *dto.Gender).MaxLength(MaxGenderLength)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.Title != nil && !dto.Title.Valid() {
		return errors.NewValidationFieldError("title", "title must be one of MR, MS, DR, PROF", errors.ErrCodeValidationFailed)
	}
	if dto.DateOfBirth != nil && !dto.DateOfBirth.Time.Before(time.Now()) {
		return errors.NewValidationFieldError("date_of_birth", "date_of_birth must be in the past", errors.ErrCodeInvalidDate)
	}
	return nil
}

// UpdatePersonDTO carries full-update semantics over the person fields.
type UpdatePersonDTO struct {
	FirstName       *string      `json:"first_name,omitempty"`
	MiddleName      *string      `json:"middle_name,omitempty"`
	LastName        *string      `json:"last_name,omitempty"`
	PreferredName   *string      `json:"preferred_name,omitempty"`
	Gender          *string      `json:"gender,omitempty"`
	DateOfBirth     *entity.Date `json:"date_of_birth,omitempty"`
	Title           *Title       `json:"title,omitempty"`
	ProfileImageURL *string      `json:"profile_image_url,omitempty"`
	CountryCode     *string      `json:"country_code,omitempty"`
	ExternalSystem  *string      `json:"external_system,omitempty"`
	ExternalID      *string      `json:"external_id,omitempty"`
}

func (dto UpdatePersonDTO) Validate() error {
	if dto.FirstName != nil && validation.IsBlank(*dto.FirstName) {
		return errors.NewValidationFieldError("first_name", "first_name cannot be blank", errors.ErrCodeValidationFailed)
	}
	if dto.LastName != nil && validation.IsBlank(*dto.LastName) {
		return errors.NewValidationFieldError("last_name", "last_name cannot be blank", errors.ErrCodeValidationFailed)
	}
	if dto.Gender != nil && len(*dto.Gender) > MaxGenderLength {
		return errors.NewValidationFieldError("gender", "gender must not exceed 20 characters", errors.ErrCodeValidationFailed)
	}
	if dto.Title != nil && !dto.Title.Valid() {
		return errors.NewValidationFieldError("title", "title must be one of MR, MS, DR, PROF", errors.ErrCodeValidationFailed)
	}
	if dto.DateOfBirth != nil && !dto.DateOfBirth.Time.Before(time.Now()) {
		return errors.NewValidationFieldError("date_of_birth", "date_of_birth must be in the past", errors.ErrCodeInvalidDate)
	}
	return nil
}

// PatchPersonDTO distinguishes absent keys from explicit nulls: an
// explicit null clears a nullable field, an absent key changes nothing.
type PatchPersonDTO struct {
	FirstName       patch.Field[string]      `json:"first_name"`
	MiddleName      patch.Field[string]      `json:"middle_name"`
	LastName        patch.Field[string]      `json:"last_name"`
	PreferredName   patch.Field[string]      `json:"preferred_name"`
	Gender          patch.Field[string]      `json:"gender"`
	DateOfBirth     patch.Field[entity.Date] `json:"date_of_birth"`
	Title           patch.Field[Title]       `json:"title"`
	ProfileImageURL patch.Field[string]      `json:"profile_image_url"`
	CountryCode     patch.Field[string]      `json:"country_code"`
	ExternalSystem  patch.Field[string]      `json:"external_system"`
	ExternalID      patch.Field[string]      `json:"external_id"`
}

func (dto PatchPersonDTO) Validate() error {
	if dto.FirstName.IsNull() {
		return errors.NewValidationFieldError("first_name", "first_name cannot be null", errors.ErrCodeValidationFailed)
	}
	if name, ok := dto.FirstName.Value(); ok && validation.IsBlank(name) {
		return errors.NewValidationFieldError("first_name", "first_name cannot be blank", errors.ErrCodeValidationFailed)
	}
	if dto.LastName.IsNull() {
		return errors.NewValidationFieldError("last_name", "last_name cannot be null", errors.ErrCodeValidationFailed)
	}
	if name, ok := dto.LastName.Value(); ok && validation.IsBlank(name) {
		return errors.NewValidationFieldError("last_name", "last_name cannot be blank", errors.ErrCodeValidationFailed)
	}
	if g, ok := dto.Gender.Value(); ok && len(g) > MaxGenderLength {
		return errors.NewValidationFieldError("gender", "gender must not exceed 20 characters", errors.ErrCodeValidationFailed)
	}
	if t, ok := dto.Title.Value(); ok && !t.Valid() {
		return errors.NewValidationFieldError("title", "title must be one of MR, MS, DR, PROF", errors.ErrCodeValidationFailed)
	}
	if dob, ok := dto.DateOfBirth.Value(); ok && !dob.Time.Before(time.Now()) {
		return errors.NewValidationFieldError("date_of_birth", "date_of_birth must be in the past", errors.ErrCodeInvalidDate)
	}
	return nil
}
