package site

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

// Repository defines the data access methods for sites.
type Repository interface {
	Create(s *Site) error
	GetByID(id uuid.UUID) (*Site, error)
	GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]*Site, error)
	UpdateVersioned(s *Site, expectedVersion int64) error
	ClearDefaultForCompany(companyID uuid.UUID, exceptID uuid.UUID) error
}

type Service struct {
	repo      Repository
	validator *Validator
	actors    actor.Provider
	logger    *slog.Logger
}

func NewService(repo Repository, companies CompanyChecker, actors actor.Provider, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(companies),
		actors:    actors,
		logger:    logger,
	}
}

func (s *Service) Create(dto CreateSiteDTO) (*Site, error) {
	site, err := s.validator.ValidateCreate(dto)
	if err != nil {
		s.logger.Error("site validation failed", "error", err, "company_id", dto.CompanyID)
		return nil, err
	}

	site.ID = uuid.New()
	site.Audit = entity.NewAudit(s.actors.Now(), s.actors.Actor())

	if err := s.repo.Create(site); err != nil {
		s.logger.Error("failed to create site", "error", err, "company_id", site.CompanyID)
		return nil, err
	}

	if site.IsDefault {
		if err := s.repo.ClearDefaultForCompany(site.CompanyID, site.ID); err != nil {
			s.logger.Error("failed to clear previous default site", "error", err, "company_id", site.CompanyID)
			return nil, err
		}
	}

	s.logger.Info("site created", "site_id", site.ID, "company_id", site.CompanyID)
	return site, nil
}

// Get returns the site by id, including soft-deleted rows.
func (s *Service) Get(id uuid.UUID) (*Site, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByCompany(companyID uuid.UUID, limit, offset int) ([]*Site, error) {
	sites, err := s.repo.GetByCompanyID(companyID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list sites", "error", err, "company_id", companyID)
		return nil, err
	}
	return sites, nil
}

func (s *Service) Update(id uuid.UUID, dto UpdateSiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	site, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := site.Version

	if dto.SiteCode != nil {
		site.SiteCode = *dto.SiteCode
	}
	if dto.SiteName != nil {
		site.SiteName = *dto.SiteName
	}
	if dto.SiteType != nil {
		site.SiteType = *dto.SiteType
	}
	if dto.IsDefault != nil {
		site.IsDefault = *dto.IsDefault
	}

	site.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(site, expected); err != nil {
		s.logger.Error("failed to update site", "error", err, "site_id", id)
		return nil, err
	}

	if dto.IsDefault != nil && *dto.IsDefault {
		if err := s.repo.ClearDefaultForCompany(site.CompanyID, site.ID); err != nil {
			s.logger.Error("failed to clear previous default site", "error", err, "company_id", site.CompanyID)
			return nil, err
		}
	}

	s.logger.Info("site updated", "site_id", id, "version", site.Version)
	return site, nil
}

func (s *Service) Patch(id uuid.UUID, dto PatchSiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	site, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	expected := site.Version

	if code, ok := dto.SiteCode.Value(); ok {
		site.SiteCode = code
	}
	if dto.SiteCode.IsNull() {
		site.SiteCode = ""
	}
	if name, ok := dto.SiteName.Value(); ok {
		site.SiteName = name
	}
	if t, ok := dto.SiteType.Value(); ok {
		site.SiteType = t
	}
	madeDefault := false
	if def, ok := dto.IsDefault.Value(); ok {
		site.IsDefault = def
		madeDefault = def
	}

	site.Touch(s.actors.Now(), s.actors.Actor())
	if err := s.repo.UpdateVersioned(site, expected); err != nil {
		s.logger.Error("failed to patch site", "error", err, "site_id", id)
		return nil, err
	}

	if madeDefault {
		if err := s.repo.ClearDefaultForCompany(site.CompanyID, site.ID); err != nil {
			s.logger.Error("failed to clear previous default site", "error", err, "company_id", site.CompanyID)
			return nil, err
		}
	}

	s.logger.Info("site patched", "site_id", id, "version", site.Version)
	return site, nil
}

func (s *Service) SoftDelete(id uuid.UUID) error {
	site, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	expected := site.Version

	if err := site.Delete(s.actors.Now(), s.actors.Actor()); err != nil {
		s.logger.Warn("site already deleted", "site_id", id)
		return AlreadyDeletedError(id)
	}

	if err := s.repo.UpdateVersioned(site, expected); err != nil {
		s.logger.Error("failed to soft delete site", "error", err, "site_id", id)
		return err
	}

	s.logger.Info("site soft deleted", "site_id", id)
	return nil
}
