package company

import (
	"log/slog"

	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/core/common/validation"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Repository defines the data access methods for companies. Every write
// after creation goes through UpdateVersioned so a stale read can never
// silently overwrite a newer row.
type Repository interface {
	Create(c *Company) error
	GetByID(id uuid.UUID) (*Company, error)
	GetAll(limit, offset int) ([]*Company, error)
	UpdateVersioned(c *Company, expectedVersion int64) error
	ExistsByID(id uuid.UUID) (bool, error)
	ExistsByCode(code string) (bool, error)
	ExistsByExternalRef(system, externalID string) (bool, error)
	ExistsSystemCompany() (bool, error)
	CountSystemCompanies() (int64, error)
}

// Service owns the company lifecycle: validate, mutate, persist.
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

func (s *Service) Create(dto CreateCompanyDTO) (*Company, error) {
	c, err := s.validator.ValidateCreate(dto)
	if err != nil {
		s.logger.Error("company validation failed", "error", err, "code", dto.Code)
		return nil, err
	}

	c.ID = uuid.New()
	c.Audit = entity.NewAudit(s.actors.Now(), s.actors.Actor())

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create company", "error", err, "code", c.Code)
		return nil, err
	}

	s.logger.Info("company created", "company_id", c.ID, "code", c.Code)
	return c, nil
}

// Get returns the company by id. Soft-deleted companies stay individually
// retrievable; only the list path excludes them.
func (s *Service) Get(id uuid.UUID) (*Company, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetAll(limit, offset int) ([]*Company, error) {
	companies, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, err
	}
	return companies, nil
}

// Update applies full-update semantics: every present field overwrites
// the stored value, absent optional fields are left untouched.
func (s *Service) Update(id uuid.UUID, dto UpdateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := c.Version

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.CountryCode != nil {
		if !validation.IsValidAlpha2CountryCode(*dto.CountryCode) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		c.CountryCode = dto.CountryCode
	}
	if dto.ExternalSystem != nil {
		c.ExternalRef.System = dto.ExternalSystem
	}
	if dto.ExternalID != nil {
		c.ExternalRef.ID = dto.ExternalID
	}
	if dto.LogoURL != nil {
		c.LogoURL = dto.LogoURL
	}
	if dto.ValidFrom != nil {
		c.ValidFrom = *dto.ValidFrom
	}
	if dto.ValidTo != nil {
		c.ValidTo = *dto.ValidTo
	}
	if dto.IsSystemCompany != nil {
		c.IsSystemCompany = *dto.IsSystemCompany
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return nil, errors.NewValidationFieldError("valid_to",
			"valid_to must not be before valid_from", errors.ErrCodeInvalidDateRange)
	}

	c.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(c, expected); err != nil {
		s.logger.Error("failed to update company", "error", err, "company_id", id)
		return nil, err
	}

	s.logger.Info("company updated", "company_id", id, "version", c.Version)
	return c, nil
}

// Patch applies the same overwrite-if-present rule as Update; the two
// differ only by request shape. Explicit nulls clear nullable fields.
func (s *Service) Patch(id uuid.UUID, dto PatchCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := c.Version

	if name, ok := dto.Name.Value(); ok {
		c.Name = name
	}
	if dto.CountryCode.IsNull() {
		c.CountryCode = nil
	} else if cc, ok := dto.CountryCode.Value(); ok {
		if !validation.IsValidAlpha2CountryCode(cc) {
			return nil, errors.NewValidationFieldError("country_code",
				"country_code must be an ISO 3166-1 alpha-2 code", errors.ErrCodeInvalidCountryCode)
		}
		c.CountryCode = &cc
	}
	if dto.ExternalSystem.IsNull() {
		c.ExternalRef.System = nil
	} else if sys, ok := dto.ExternalSystem.Value(); ok {
		c.ExternalRef.System = &sys
	}
	if dto.ExternalID.IsNull() {
		c.ExternalRef.ID = nil
	} else if extID, ok := dto.ExternalID.Value(); ok {
		c.ExternalRef.ID = &extID
	}
	if dto.LogoURL.IsNull() {
		c.LogoURL = nil
	} else if logo, ok := dto.LogoURL.Value(); ok {
		c.LogoURL = &logo
	}
	if from, ok := dto.ValidFrom.Value(); ok {
		c.ValidFrom = from
	}
	if to, ok := dto.ValidTo.Value(); ok {
		c.ValidTo = to
	}
	if system, ok := dto.IsSystemCompany.Value(); ok {
		c.IsSystemCompany = system
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return nil, errors.NewValidationFieldError("valid_to",
			"valid_to must not be before valid_from", errors.ErrCodeInvalidDateRange)
	}

	c.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(c, expected); err != nil {
		s.logger.Error("failed to patch company", "error", err, "company_id", id)
		return nil, err
	}

	s.logger.Info("company patched", "company_id", id, "version", c.Version)
	return c, nil
}

// SoftDelete marks the company deleted. Deleting twice is an error.
func (s *Service) SoftDelete(id uuid.UUID) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	expected := c.Version

	if err := c.Delete(s.actors.Now(), s.actors.Actor()); err != nil {
		s.logger.Warn("company already deleted", "company_id", id)
		return AlreadyDeletedError(id)
	}

	if err := s.repo.UpdateVersioned(c, expected); err != nil {
		s.logger.Error("failed to soft delete company", "error", err, "company_id", id)
		return err
	}

	s.logger.Info("company soft deleted", "company_id", id)
	return nil
}
