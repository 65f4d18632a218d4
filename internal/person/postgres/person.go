package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal/person"
)

// PersonRepository implements the person.Repository interface using GORM
type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) person.Repository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(p *person.Person) error {
	return r.db.Create(p).Error
}

// GetByID loads the row whether or not it is soft-deleted; the service
// decides visibility.
func (r *PersonRepository) GetByID(id uuid.UUID) (*person.Person, error) {
	var p person.Person
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, person.NotFoundError(id)
		}
		return nil, err
	}
	return &p, nil
}

// GetAll lists people excluding soft-deleted rows.
func (r *PersonRepository) GetAll(limit, offset int) ([]*person.Person, error) {
	var people []*person.Person
	err := r.db.Where("deleted_at IS NULL").
		Order("last_name ASC, first_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&people).Error
	return people, err
}

// UpdateVersioned writes the full row conditioned on the version the
// caller read; zero rows affected means a concurrent writer won.
func (r *PersonRepository) UpdateVersioned(p *person.Person, expectedVersion int64) error {
	p.Version = expectedVersion + 1
	res := r.db.Model(&person.Person{}).
		Where("id = ? AND version = ?", p.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(p)
	if res.Error != nil {
		p.Version = expectedVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		p.Version = expectedVersion
		return person.VersionConflictError(p.ID)
	}
	return nil
}

// ExistsByExternalRef checks the alternate key among non-deleted rows.
func (r *PersonRepository) ExistsByExternalRef(system, externalID string) (bool, error) {
	var n int64
	err := r.db.Model(&person.Person{}).
		Where("external_system = ? AND external_id = ? AND deleted_at IS NULL", system, externalID).
		Count(&n).Error
	return n > 0, err
}
