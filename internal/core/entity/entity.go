package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyDeleted is returned when a soft delete is attempted on a
// record that is already deleted. Re-deleting is an error, not a no-op.
var ErrAlreadyDeleted = errors.New("record already deleted")

// ExternalRef identifies a record in an upstream system. The pair is an
// optional composite alternate key: either both fields are set or neither.
type ExternalRef struct {
	System *string `json:"external_system,omitempty" gorm:"column:external_system"`
	ID     *string `json:"external_id,omitempty" gorm:"column:external_id"`
}

// IsSet reports whether both halves of the pair are present and non-blank.
func (r ExternalRef) IsSet() bool {
	return notBlank(r.System) && notBlank(r.ID)
}

// IsPartial reports whether exactly one half is present, which is invalid.
func (r ExternalRef) IsPartial() bool {
	return notBlank(r.System) != notBlank(r.ID)
}

func notBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Deletion records when and by whom a record was soft deleted. A record is
// deleted iff At is non-nil; the zero value means live. There is no
// separate boolean, so "deleted but still active" is unrepresentable.
type Deletion struct {
	At *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
	By *uuid.UUID `json:"deleted_by,omitempty" gorm:"column:deleted_by;type:uuid"`
}

func (d Deletion) Deleted() bool {
	return d.At != nil
}

// Audit carries the lifecycle flags, audit trail and optimistic version
// counter shared by every directory entity.
type Audit struct {
	IsActive       bool       `json:"is_active" gorm:"column:is_active;not null"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	CreatedBy      uuid.UUID  `json:"created_by" gorm:"column:created_by;type:uuid"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty" gorm:"column:last_modified_at"`
	LastModifiedBy *uuid.UUID `json:"last_modified_by,omitempty" gorm:"column:last_modified_by;type:uuid"`
	Deletion       `gorm:"embedded"`
	Version        int64 `json:"version" gorm:"column:version;not null"`
}

// NewAudit returns the audit block for a freshly created record:
// active, not deleted, version zero.
func NewAudit(now time.Time, by uuid.UUID) Audit {
	return Audit{
		IsActive:  true,
		CreatedAt: now,
		CreatedBy: by,
		Version:   0,
	}
}

// Touch stamps a mutation. The version counter itself advances in the
// storage layer as part of the conditional write, not here.
func (a *Audit) Touch(now time.Time, by uuid.UUID) {
	a.LastModifiedAt = &now
	a.LastModifiedBy = &by
}

// Delete marks the record soft deleted. Deleting forces the active flag
// off so the two can never disagree. A second delete fails.
func (a *Audit) Delete(now time.Time, by uuid.UUID) error {
	if a.Deleted() {
		return ErrAlreadyDeleted
	}
	a.Deletion = Deletion{At: &now, By: &by}
	a.IsActive = false
	return nil
}

// Record is the identity and audit base embedded by party-style entities
// (Company, Person, User). Site carries its own identifier plus Audit
// because it has no external-system identity.
type Record struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	ExternalRef `gorm:"embedded"`
	CountryCode *string `json:"country_code,omitempty" gorm:"column:country_code;size:2"`
	Audit       `gorm:"embedded"`
}

// NewRecord mints the base for a new entity with a generated identifier.
func NewRecord(now time.Time, by uuid.UUID) Record {
	return Record{
		ID:    uuid.New(),
		Audit: NewAudit(now, by),
	}
}
