package site

import "github.com/google/uuid"

// CompanyChecker is the slice of the company repository the site
// validator needs: existence checks only.
type CompanyChecker interface {
	ExistsByID(id uuid.UUID) (bool, error)
}

// Validator gates site creation: the owning company must exist before
// any site can be attached to it.
type Validator struct {
	companies CompanyChecker
}

func NewValidator(companies CompanyChecker) *Validator {
	return &Validator{companies: companies}
}

func (v *Validator) ValidateCreate(dto CreateSiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := v.companies.ExistsByID(dto.CompanyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, CompanyNotFoundError(dto.CompanyID)
	}

	return &Site{
		CompanyID: dto.CompanyID,
		SiteCode:  dto.SiteCode,
		SiteName:  dto.SiteName,
		SiteType:  dto.SiteType,
		IsDefault: dto.IsDefault,
	}, nil
}
