package user

import (
	"time"

	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/person"
)

// User is a directory account. It shares the person profile fields and
// adds credentials plus the account status flags.
type User struct {
	entity.Record  `gorm:"embedded"`
	person.Profile `gorm:"embedded"`

	Username           string `json:"username" gorm:"column:username;size:100;not null"`
	PasswordHash       string `json:"-" gorm:"column:password_hash;not null"`
	Enabled            bool   `json:"enabled" gorm:"column:enabled;not null"`
	AccountLocked      bool   `json:"account_locked" gorm:"column:account_locked;not null"`
	AccountExpired     bool   `json:"account_expired" gorm:"column:account_expired;not null"`
	CredentialsExpired bool   `json:"credentials_expired" gorm:"column:credentials_expired;not null"`
}

func (User) TableName() string {
	return "users"
}

// CanLogin reports whether the account is usable for authentication.
func (u *User) CanLogin() bool {
	return u.Enabled && !u.AccountLocked && !u.AccountExpired && !u.Deleted()
}

// Role names a grantable capability bundle.
type Role struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"column:name;size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"column:description"`
}

func (Role) TableName() string {
	return "user_role"
}

// RoleAssignment grants a role to a user, optionally until an expiry
// instant. A nil ExpiresAt means the grant is permanent.
type RoleAssignment struct {
	ID         uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"user_id" gorm:"column:user_id;type:uuid;not null"`
	RoleID     uuid.UUID  `json:"role_id" gorm:"column:role_id;type:uuid;not null"`
	AssignedAt time.Time  `json:"assigned_at" gorm:"column:assigned_at;not null"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" gorm:"column:expires_at"`
	AssignedBy string     `json:"assigned_by" gorm:"column:assigned_by"`
}

func (RoleAssignment) TableName() string {
	return "user_role_assignment"
}

// ActiveAt reports whether the grant is in force at the given instant.
// A grant expires exactly at ExpiresAt: the boundary instant is inactive.
func (a *RoleAssignment) ActiveAt(now time.Time) bool {
	return a.ExpiresAt == nil || now.Before(*a.ExpiresAt)
}

func NotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound).
		WithEntity("User", id)
}

func RoleNotFoundError(id uuid.UUID) *errors.AppError {
	return errors.NewNotFoundError("role not found", errors.ErrCodeRoleNotFound).
		WithEntity("Role", id)
}

func DuplicateUsernameError(username string) *errors.AppError {
	return errors.NewConflictError("username already in use", errors.ErrCodeDuplicateUsername).
		WithDetails(map[string]string{"username": username})
}

func DuplicateRoleNameError(name string) *errors.AppError {
	return errors.NewConflictError("role name already in use", errors.ErrCodeDuplicateRoleName).
		WithDetails(map[string]string{"name": name})
}

func AlreadyDeletedError(id uuid.UUID) *errors.AppError {
	return errors.NewGoneError("user already deleted", errors.ErrCodeAlreadyDeleted).
		WithEntity("User", id)
}

func VersionConflictError(id uuid.UUID) *errors.AppError {
	return errors.NewConflictError("user was modified concurrently", errors.ErrCodeVersionConflict).
		WithEntity("User", id)
}
