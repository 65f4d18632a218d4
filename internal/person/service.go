package person

import (
	"log/slog"

	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Repository defines the data access methods for people.
type Repository interface {
	Create(p *Person) error
	GetByID(id uuid.UUID) (*Person, error)
	GetAll(limit, offset int) ([]*Person, error)
	UpdateVersioned(p *Person, expectedVersion int64) error
	ExistsByExternalRef(system, externalID string) (bool, error)
}

type Service struct {
	repo      Repository
	validator *Validator
	actors    actor.Provider
	logger    *slog.Logger
}

func NewService(repo Repository, actors actor.Provider, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(repo),
		actors:    actors,
		logger:    logger,
	}
}

func (s *Service) Create(dto CreatePersonDTO) (*Person, error) {
	p, err := s.validator.ValidateCreate(dto)
	if err != nil {
		s.logger.Error("person validation failed", "error", err)
		return nil, err
	}

	p.ID = uuid.New()
	p.Audit = entity.NewAudit(s.actors.Now(), s.actors.Actor())

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create person", "error", err)
		return nil, err
	}

	s.logger.Info("person created", "person_id", p.ID)
	return p, nil
}

// Get returns the person by id. Unlike companies, a soft-deleted person
// is not retrievable: reads answer not found once the row is deleted.
func (s *Service) Get(id uuid.UUID) (*Person, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.Deleted() {
		return nil, NotFoundError(id)
	}
	return p, nil
}

func (s *Service) GetAll(limit, offset int) ([]*Person, error) {
	people, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list people", "error", err)
		return nil, err
	}
	return people, nil
}

func (s *Service) Update(id uuid.UUID, dto UpdatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := p.Version

	if dto.FirstName != nil {
		p.FirstName = *dto.FirstName
	}
	if dto.MiddleName != nil {
		p.MiddleName = dto.MiddleName
	}
	if dto.LastName != nil {
		p.LastName = *dto.LastName
	}
	if dto.PreferredName != nil {
		p.PreferredName = dto.PreferredName
	}
	if dto.Gender != nil {
		p.Gender = dto.Gender
	}
	if dto.DateOfBirth != nil {
		p.DateOfBirth = dto.DateOfBirth
	}
	if dto.Title != nil {
		p.Title = dto.Title
	}
	if dto.ProfileImageURL != nil {
		p.ProfileImageURL = dto.ProfileImageURL
	}
	if dto.CountryCode != nil {
		if !validation.IsValidAlpha2CountryCode(*dto.CountryCode) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		p.CountryCode = dto.CountryCode
	}
	if dto.ExternalSystem != nil {
		p.ExternalRef.System = dto.ExternalSystem
	}
	if dto.ExternalID != nil {
		p.ExternalRef.ID = dto.ExternalID
	}

	p.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(p, expected); err != nil {
		s.logger.Error("failed to update person", "error", err, "person_id", id)
		return nil, err
	}

	s.logger.Info("person updated", "person_id", id, "version", p.Version)
	return p, nil
}

func (s *Service) Patch(id uuid.UUID, dto PatchPersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := p.Version

	if name, ok := dto.FirstName.Value(); ok {
		p.FirstName = name
	}
	if dto.MiddleName.IsNull() {
		p.MiddleName = nil
	} else if name, ok := dto.MiddleName.Value(); ok {
		p.MiddleName = &name
	}
	if name, ok := dto.LastName.Value(); ok {
		p.LastName = name
	}
	if dto.PreferredName.IsNull() {
		p.PreferredName = nil
	} else if name, ok := dto.PreferredName.Value(); ok {
		p.PreferredName = &name
	}
	if dto.Gender.IsNull() {
		p.Gender = nil
	} else if g, ok := dto.Gender.Value(); ok {
		p.Gender = &g
	}
	if dto.DateOfBirth.IsNull() {
		p.DateOfBirth = nil
	} else if dob, ok := dto.DateOfBirth.Value(); ok {
		p.DateOfBirth = &dob
	}
	if dto.Title.IsNull() {
		p.Title = nil
	} else if t, ok := dto.Title.Value(); ok {
		p.Title = &t
	}
	if dto.ProfileImageURL.IsNull() {
		p.ProfileImageURL = nil
	} else if img, ok := dto.ProfileImageURL.Value(); ok {
		p.ProfileImageURL = &img
	}
	if dto.CountryCode.IsNull() {
		p.CountryCode = nil
	} else if cc, ok := dto.CountryCode.Value(); ok {
		if !validation.IsValidAlpha2CountryCode(cc) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		p.CountryCode = &cc
	}
	if dto.ExternalSystem.IsNull() {
		p.ExternalRef.System = nil
	} else if sys, ok := dto.ExternalSystem.Value(); ok {
		p.ExternalRef.System = &sys
	}
	if dto.ExternalID.IsNull() {
		p.ExternalRef.ID = nil
	} else if extID, ok := dto.ExternalID.Value(); ok {
		p.ExternalRef.ID = &extID
	}

	p.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(p, expected); err != nil {
		s.logger.Error("failed to patch person", "error", err, "person_id", id)
		return nil, err
	}

	s.logger.Info("person patched", "person_id", id, "version", p.Version)
	return p, nil
}

func (s *Service) SoftDelete(id uuid.UUID) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	expected := p.Version

	if err := p.Delete(s.actors.Now(), s.actors.Actor()); err != nil {
		s.logger.Warn("person already deleted", "person_id", id)
		return AlreadyDeletedError(id)
	}

	if err := s.repo.UpdateVersioned(p, expected); err != nil {
		s.logger.Error("failed to soft delete person", "error", err, "person_id", id)
		return err
	}

	s.logger.Info("person soft deleted", "person_id", id)
	return nil
}
