package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/site"
)

func TestSiteRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Site Repository Suite")
}

var _ = Describe("SiteRepository", func() {
	var (
		db        *gorm.DB
		repo      site.Repository
		companyID uuid.UUID
	)

	newSite := func(code string, isDefault bool) *site.Site {
		s := &site.Site{
			ID:        uuid.New(),
			CompanyID: companyID,
			SiteCode:  code,
			SiteName:  code + " Site",
			SiteType:  site.SiteTypeOffice,
			IsDefault: isDefault,
			Audit:     entity.NewAudit(time.Now().UTC(), uuid.Nil),
		}
		return s
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&site.Site{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewSiteRepository(db)
		companyID = uuid.New()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("UpdateVersioned", func() {
		It("should advance the version on a matching write", func() {
			s := newSite("HQ", false)
			Expect(repo.Create(s)).To(Succeed())

			s.SiteName = "Headquarters"
			Expect(repo.UpdateVersioned(s, 0)).To(Succeed())

			got, err := repo.GetByID(s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.SiteName).To(Equal("Headquarters"))
			Expect(got.Version).To(Equal(int64(1)))
		})

		It("should reject a stale version and leave the row intact", func() {
			s := newSite("HQ", false)
			Expect(repo.Create(s)).To(Succeed())

			stale := *s
			stale.SiteName = "Stale"
			err := repo.UpdateVersioned(&stale, 7)
			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeVersionConflict))

			got, err := repo.GetByID(s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.SiteName).To(Equal("HQ Site"))
			Expect(got.Version).To(Equal(int64(0)))
		})
	})

	Describe("ClearDefaultForCompany", func() {
		It("should unset and version-bump the displaced default only", func() {
			old := newSite("OLD", true)
			Expect(repo.Create(old)).To(Succeed())
			next := newSite("NEW", true)
			Expect(repo.Create(next)).To(Succeed())

			Expect(repo.ClearDefaultForCompany(companyID, next.ID)).To(Succeed())

			displaced, err := repo.GetByID(old.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(displaced.IsDefault).To(BeFalse())
			Expect(displaced.Version).To(Equal(int64(1)))

			kept, err := repo.GetByID(next.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(kept.IsDefault).To(BeTrue())
			Expect(kept.Version).To(Equal(int64(0)))
		})

		It("should not touch sites of other companies", func() {
			other := newSite("OTHER", true)
			other.CompanyID = uuid.New()
			Expect(repo.Create(other)).To(Succeed())

			Expect(repo.ClearDefaultForCompany(companyID, uuid.New())).To(Succeed())

			got, err := repo.GetByID(other.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.IsDefault).To(BeTrue())
			Expect(got.Version).To(Equal(int64(0)))
		})
	})
})
