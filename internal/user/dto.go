package user

import (
	"time"

	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/person"
)

const (
	MaxUsernameLength = 100
	MinPasswordLength = 8
)

// CreateUserDTO is the request payload for provisioning an account.
type CreateUserDTO struct {
	Username       string         `json:"username"`
	Password       string         `json:"password"`
	FirstName      string         `json:"first_name"`
	MiddleName     *string        `json:"middle_name,omitempty"`
	LastName       string         `json:"last_name"`
	PreferredName  *string        `json:"preferred_name,omitempty"`
	Title          *person.Title  `json:"title,omitempty"`
	CountryCode    *string        `json:"country_code,omitempty"`
	ExternalSystem *string        `json:"external_system,omitempty"`
	ExternalID     *string        `json:"external_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(MaxUsernameLength)
	v.Field("first_name", dto.FirstName).Required().MaxLength(person.MaxNameLength)
	v.Field("last_name", dto.LastName).Required().MaxLength(person.MaxNameLength)
	if err := v.Validate(); err != nil {
		return err
	}
	if len(dto.Password) < MinPasswordLength {
		return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
	}
	if dto.Title != nil && !dto.Title.Valid() {
		return errors.NewValidationFieldError("title", "title must be one of MR, MS, DR, PROF", errors.ErrCodeValidationFailed)
	}
	return nil
}

// AssignRoleDTO grants a role to a user, optionally with an expiry.
type AssignRoleDTO struct {
	RoleID    uuid.UUID  `json:"role_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (dto AssignRoleDTO) Validate() error {
	if dto.RoleID == uuid.Nil {
		return errors.NewValidationFieldError("role_id", "role_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// CreateRoleDTO adds an entry to the role catalog.
type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreateRoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UserResponse is the read shape for an account: the stored fields plus
// the role names in force right now.
type UserResponse struct {
	*User
	EffectiveRoles []string `json:"effective_roles"`
}
