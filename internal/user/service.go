package user

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/person"
)

// Repository defines the data access methods for users, roles and role
// assignments.
type Repository interface {
	Create(u *User) error
	GetByID(id uuid.UUID) (*User, error)
	GetByUsername(username string) (*User, error)
	GetAll(limit, offset int) ([]*User, error)
	UpdateVersioned(u *User, expectedVersion int64) error
	ExistsByUsername(username string) (bool, error)

	CreateRole(r *Role) error
	GetRoleByID(id uuid.UUID) (*Role, error)
	GetRoleByName(name string) (*Role, error)
	GetRoles() ([]*Role, error)
	ExistsRoleByName(name string) (bool, error)

	CreateAssignment(a *RoleAssignment) error
	GetAssignmentsByUserID(userID uuid.UUID) ([]*RoleAssignment, error)
}

type Service struct {
	repo       Repository
	actors     actor.Provider
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, actors actor.Provider, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		actors:     actors,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "username", dto.Username)
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(dto.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, DuplicateUsernameError(dto.Username)
	}

	if dto.CountryCode != nil && !validation.IsValidAlpha2CountryCode(*dto.CountryCode) {
		return nil, errors.NewValidationFieldError("country_code",
			"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
	}
	extRef := entity.ExternalRef{System: dto.ExternalSystem, ID: dto.ExternalID}
	if extRef.IsPartial() {
		return nil, errors.NewValidationFieldError("external_id",
			"external_system and external_id must be supplied together", errors.ErrCodePartialExternalRef)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Profile: person.Profile{
			FirstName:     dto.FirstName,
			MiddleName:    dto.MiddleName,
			LastName:      dto.LastName,
			PreferredName: dto.PreferredName,
			Title:         dto.Title,
		},
		Username:     dto.Username,
		PasswordHash: string(hash),
		Enabled:      true,
	}
	u.ID = uuid.New()
	u.CountryCode = dto.CountryCode
	if extRef.IsSet() {
		u.ExternalRef = extRef
	}
	u.Audit = entity.NewAudit(s.actors.Now(), s.actors.Actor())

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", u.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Get returns a user with the role names in force right now. Deleted
// accounts read as not found.
func (s *Service) Get(id uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u.Deleted() {
		return nil, NotFoundError(id)
	}

	roles, err := s.EffectiveRoles(id)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: u, EffectiveRoles: roles}, nil
}

func (s *Service) GetByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}

func (s *Service) GetAll(limit, offset int) ([]*User, error) {
	users, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// AssignRole grants the role to the user. Both must exist; grants may
// repeat, so EffectiveRoles deduplicates by name.
func (s *Service) AssignRole(userID uuid.UUID, dto AssignRoleDTO) (*RoleAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u.Deleted() {
		return nil, NotFoundError(userID)
	}

	role, err := s.repo.GetRoleByID(dto.RoleID)
	if err != nil {
		return nil, err
	}

	a := &RoleAssignment{
		ID:         uuid.New(),
		UserID:     u.ID,
		RoleID:     role.ID,
		AssignedAt: s.actors.Now(),
		ExpiresAt:  dto.ExpiresAt,
		AssignedBy: s.actors.Actor().String(),
	}
	if err := s.repo.CreateAssignment(a); err != nil {
		s.logger.Error("failed to assign role", "error", err, "user_id", userID, "role_id", role.ID)
		return nil, err
	}

	s.logger.Info("role assigned", "user_id", userID, "role", role.Name, "expires_at", dto.ExpiresAt)
	return a, nil
}

// EffectiveRoles resolves the distinct role names whose grants are
// active at the current instant. Expired grants stay on record but do
// not contribute.
func (s *Service) EffectiveRoles(userID uuid.UUID) ([]string, error) {
	assignments, err := s.repo.GetAssignmentsByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := s.actors.Now()
	seen := make(map[uuid.UUID]bool)
	names := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if !a.ActiveAt(now) || seen[a.RoleID] {
			continue
		}
		seen[a.RoleID] = true
		role, err := s.repo.GetRoleByID(a.RoleID)
		if err != nil {
			return nil, err
		}
		names = append(names, role.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsRoleByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, DuplicateRoleNameError(dto.Name)
	}

	role := &Role{
		ID:          uuid.New(),
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		s.logger.Error("failed to create role", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

func (s *Service) GetRoles() ([]*Role, error) {
	return s.repo.GetRoles()
}

func (s *Service) SoftDelete(id uuid.UUID) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	expected := u.Version

	if err := u.Delete(s.actors.Now(), s.actors.Actor()); err != nil {
		s.logger.Warn("user already deleted", "user_id", id)
		return AlreadyDeletedError(id)
	}

	if err := s.repo.UpdateVersioned(u, expected); err != nil {
		s.logger.Error("failed to soft delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user soft deleted", "user_id", id)
	return nil
}
