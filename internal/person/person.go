package person

import (
	"strings"

	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Title is an honorific prefix.
type Title string

const (
	TitleMr   Title = "MR"
	TitleMs   Title = "MS"
	TitleDr   Title = "DR"
	TitleProf Title = "PROF"
)

func (t Title) Valid() bool {
	switch t {
	case TitleMr, TitleMs, TitleDr, TitleProf:
		return true
	}
	return false
}

// Profile holds the naming and biographical fields shared by people and
// user accounts.
type Profile struct {
	FirstName       string       `json:"first_name" gorm:"column:first_name;size:100"`
	MiddleName      *string      `json:"middle_name,omitempty" gorm:"column:middle_name;size:100"`
	LastName        string       `json:"last_name" gorm:"column:last_name;size:100"`
	PreferredName   *string      `json:"preferred_name,omitempty" gorm:"column:preferred_name;size:100"`
	Gender          *string      `json:"gender,omitempty" gorm:"column:gender;size:20"`
	DateOfBirth     *entity.Date `json:"date_of_birth,omitempty" gorm:"column:date_of_birth;type:date"`
	Title           *Title       `json:"title,omitempty" gorm:"column:title;size:10"`
	ProfileImageURL *string      `json:"profile_image_url,omitempty" gorm:"column:profile_image_url"`
}

// DisplayName prefers the preferred name, falling back to first plus last.
func (p Profile) DisplayName() string {
	if p.PreferredName != nil && strings.TrimSpace(*p.PreferredName) != "" {
		return *p.PreferredName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Person is a natural person known to the directory.
type Person struct {
	entity.Record `gorm:"embedded"`
	Profile       `gorm:"embedded"`
}

func (Person) TableName() string {
	return "person"
}

func NotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("person not found", errors.ErrCodePersonNotFound).
		WithEntity("Person", id)
}

func DuplicateExternalRefError(system, externalID string) *errors.AppError {
	return errors.NewConflictError("external reference already in use", errors.ErrCodeDuplicateExternalRef).
		WithDetails(map[string]string{"external_system": system, "external_id": externalID})
}

func AlreadyDeletedError(id uuid.UUID) *errors.AppError {
	return errors.NewGoneError("person already deleted", errors.ErrCodeAlreadyDeleted).
		WithEntity("Person", id)
}

func VersionConflictError(id uuid.UUID) *errors.AppError {
	return errors.NewConflictError("person was modified concurrently", errors.ErrCodeVersionConflict).
		WithEntity("Person", id)
}
