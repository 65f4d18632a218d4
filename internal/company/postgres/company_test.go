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
	"github.com/ropereralk/enterprise-directory/internal/company"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

func TestCompanyRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Repository Suite")
}

var _ = Describe("CompanyRepository", func() {
	var (
		db   *gorm.DB
		repo company.Repository
	)

	newCompany := func(code string) *company.Company {
		c := &company.Company{
			Code:      code,
			Name:      code + " Corp",
			ValidFrom: company.DefaultValidFrom,
			ValidTo:   company.DefaultValidTo,
		}
		c.ID = uuid.New()
		c.Audit = entity.NewAudit(time.Now().UTC(), uuid.Nil)
		return c
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&company.Company{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewCompanyRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should persist and reload a company", func() {
			c := newCompany("ACME")
			Expect(repo.Create(c)).To(Succeed())

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Code).To(Equal("ACME"))
			Expect(got.Version).To(Equal(int64(0)))
		})

		It("should refuse a second system company inside the transaction", func() {
			first := newCompany("SYS")
			first.IsSystemCompany = true
			Expect(repo.Create(first)).To(Succeed())

			second := newCompany("SYS2")
			second.IsSystemCompany = true
			err := repo.Create(second)
			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeSystemCompanyExists))
		})
	})

	Describe("GetByID", func() {
		It("should return not found for an unknown id", func() {
			_, err := repo.GetByID(uuid.New())

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeCompanyNotFound))
		})

		It("should still return a soft-deleted company", func() {
			c := newCompany("ACME")
			Expect(repo.Create(c)).To(Succeed())
			Expect(c.Delete(time.Now().UTC(), uuid.Nil)).To(Succeed())
			Expect(repo.UpdateVersioned(c, 0)).To(Succeed())

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Deleted()).To(BeTrue())
		})
	})

	Describe("GetAll", func() {
		It("should exclude soft-deleted companies", func() {
			live := newCompany("LIVE")
			Expect(repo.Create(live)).To(Succeed())

			gone := newCompany("GONE")
			Expect(repo.Create(gone)).To(Succeed())
			Expect(gone.Delete(time.Now().UTC(), uuid.Nil)).To(Succeed())
			Expect(repo.UpdateVersioned(gone, 0)).To(Succeed())

			all, err := repo.GetAll(50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].Code).To(Equal("LIVE"))
		})
	})

	Describe("UpdateVersioned", func() {
		It("should advance the version on a matching expected version", func() {
			c := newCompany("ACME")
			Expect(repo.Create(c)).To(Succeed())

			c.Name = "Acme International"
			Expect(repo.UpdateVersioned(c, 0)).To(Succeed())
			Expect(c.Version).To(Equal(int64(1)))

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Acme International"))
			Expect(got.Version).To(Equal(int64(1)))
		})

		It("should reject a stale expected version and keep the row intact", func() {
			c := newCompany("ACME")
			Expect(repo.Create(c)).To(Succeed())

			c.Name = "First"
			Expect(repo.UpdateVersioned(c, 0)).To(Succeed())

			stale := *c
			stale.Name = "Second"
			err := repo.UpdateVersioned(&stale, 0)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeVersionConflict))
			Expect(stale.Version).To(Equal(int64(0)))

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("First"))
		})
	})

	Describe("ExistsByExternalRef", func() {
		It("should ignore soft-deleted rows", func() {
			sys := "SAP"
			ext := "1001"
			c := newCompany("ACME")
			c.ExternalRef = entity.ExternalRef{System: &sys, ID: &ext}
			Expect(repo.Create(c)).To(Succeed())

			exists, err := repo.ExistsByExternalRef("SAP", "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			Expect(c.Delete(time.Now().UTC(), uuid.Nil)).To(Succeed())
			Expect(repo.UpdateVersioned(c, 0)).To(Succeed())

			exists, err = repo.ExistsByExternalRef("SAP", "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
