package site_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/core/patch"
	"github.com/ropereralk/enterprise-directory/internal/site"
)

func TestSiteService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Site Service Suite")
}

// Mock repository for testing
type mockSiteRepository struct {
	sites       map[uuid.UUID]*site.Site
	createError error
	updateError error
}

func newMockSiteRepository() *mockSiteRepository {
	return &mockSiteRepository{
		sites: make(map[uuid.UUID]*site.Site),
	}
}

func (m *mockSiteRepository) Create(s *site.Site) error {
	if m.createError != nil {
		return m.createError
	}
	copied := *s
	m.sites[s.ID] = &copied
	return nil
}

func (m *mockSiteRepository) GetByID(id uuid.UUID) (*site.Site, error) {
	s, exists := m.sites[id]
	if !exists {
		return nil, site.NotFoundError(id)
	}
	copied := *s
	return &copied, nil
}

func (m *mockSiteRepository) GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]*site.Site, error) {
	var out []*site.Site
	for _, s := range m.sites {
		if s.CompanyID == companyID && !s.Deleted() {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockSiteRepository) UpdateVersioned(s *site.Site, expectedVersion int64) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored, exists := m.sites[s.ID]
	if !exists || stored.Version != expectedVersion {
		return site.VersionConflictError(s.ID)
	}
	s.Version = expectedVersion + 1
	copied := *s
	m.sites[s.ID] = &copied
	return nil
}

func (m *mockSiteRepository) ClearDefaultForCompany(companyID uuid.UUID, exceptID uuid.UUID) error {
	for _, s := range m.sites {
		if s.CompanyID == companyID && s.ID != exceptID {
			s.IsDefault = false
		}
	}
	return nil
}

// mockCompanyChecker answers existence checks from a fixed id set
type mockCompanyChecker struct {
	known map[uuid.UUID]bool
}

func (m *mockCompanyChecker) ExistsByID(id uuid.UUID) (bool, error) {
	return m.known[id], nil
}

var _ = Describe("SiteService", func() {
	var (
		service   *site.Service
		mockRepo  *mockSiteRepository
		companies *mockCompanyChecker
		companyID uuid.UUID
	)

	BeforeEach(func() {
		mockRepo = newMockSiteRepository()
		companyID = uuid.New()
		companies = &mockCompanyChecker{known: map[uuid.UUID]bool{companyID: true}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		service = site.NewService(mockRepo, companies, actor.Fixed(uuid.New(), now), logger)
	})

	Describe("Create", func() {
		It("should create a site under an existing company", func() {
			result, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID,
				SiteCode:  "HQ",
				SiteName:  "Headquarters",
				SiteType:  site.SiteTypeOffice,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).ToNot(Equal(uuid.Nil))
			Expect(result.CompanyID).To(Equal(companyID))
			Expect(result.Version).To(Equal(int64(0)))
		})

		It("should answer not found when the company does not exist", func() {
			_, err := service.Create(site.CreateSiteDTO{
				CompanyID: uuid.New(),
				SiteType:  site.SiteTypeOffice,
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeNotFound))
			Expect(appErr.Code).To(Equal(errors.ErrCodeCompanyNotFound))
		})

		It("should reject a missing site type with a validation error", func() {
			_, err := service.Create(site.CreateSiteDTO{CompanyID: companyID})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("should reject an unknown site type", func() {
			_, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID,
				SiteType:  site.SiteType("CASTLE"),
			})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("should clear the previous default when a new default is created", func() {
			first, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID, SiteType: site.SiteTypeOffice, IsDefault: true,
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(site.CreateSiteDTO{
				CompanyID: companyID, SiteType: site.SiteTypeFactory, IsDefault: true,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(mockRepo.sites[first.ID].IsDefault).To(BeFalse())
		})
	})

	Describe("Patch", func() {
		It("should change only present fields", func() {
			created, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID,
				SiteCode:  "HQ",
				SiteName:  "Headquarters",
				SiteType:  site.SiteTypeOffice,
			})
			Expect(err).ToNot(HaveOccurred())

			patched, err := service.Patch(created.ID, site.PatchSiteDTO{
				SiteName: patch.Set("Main Office"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(patched.SiteName).To(Equal("Main Office"))
			Expect(patched.SiteCode).To(Equal("HQ"))
			Expect(patched.SiteType).To(Equal(site.SiteTypeOffice))
			Expect(patched.Version).To(Equal(int64(1)))
		})

		It("should reject null on the site type", func() {
			created, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID, SiteType: site.SiteTypeOffice,
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Patch(created.ID, site.PatchSiteDTO{
				SiteType: patch.Null[site.SiteType](),
			})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("SoftDelete", func() {
		It("should answer gone on a second delete", func() {
			created, err := service.Create(site.CreateSiteDTO{
				CompanyID: companyID, SiteType: site.SiteTypeWarehouse,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.SoftDelete(created.ID)).To(Succeed())

			err = service.SoftDelete(created.ID)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeAlreadyDeleted))
		})
	})
})
