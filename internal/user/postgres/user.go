package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uuid.UUID) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.NotFoundError(id)
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsername resolves a live account; deleted accounts never match.
func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var u user.User
	err := r.db.Where("username = ? AND deleted_at IS NULL", username).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.NotFoundError(uuid.Nil)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("deleted_at IS NULL").
		Order("username ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

// UpdateVersioned writes the full row conditioned on the version the
// caller read; zero rows affected means a concurrent writer won.
func (r *UserRepository) UpdateVersioned(u *user.User, expectedVersion int64) error {
	u.Version = expectedVersion + 1
	res := r.db.Model(&user.User{}).
		Where("id = ? AND version = ?", u.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(u)
	if res.Error != nil {
		u.Version = expectedVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		u.Version = expectedVersion
		return user.VersionConflictError(u.ID)
	}
	return nil
}

// ExistsByUsername checks among live accounts only; a deleted account
// frees its username.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var n int64
	err := r.db.Model(&user.User{}).
		Where("username = ? AND deleted_at IS NULL", username).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) CreateRole(role *user.Role) error {
	return r.db.Create(role).Error
}

func (r *UserRepository) GetRoleByID(id uuid.UUID) (*user.Role, error) {
	var role user.Role
	err := r.db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.RoleNotFoundError(id)
		}
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) GetRoleByName(name string) (*user.Role, error) {
	var role user.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.RoleNotFoundError(uuid.Nil)
		}
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) GetRoles() ([]*user.Role, error) {
	var roles []*user.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *UserRepository) ExistsRoleByName(name string) (bool, error) {
	var n int64
	err := r.db.Model(&user.Role{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) CreateAssignment(a *user.RoleAssignment) error {
	return r.db.Create(a).Error
}

func (r *UserRepository) GetAssignmentsByUserID(userID uuid.UUID) ([]*user.RoleAssignment, error) {
	var assignments []*user.RoleAssignment
	err := r.db.Where("user_id = ?", userID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	return assignments, err
}
