package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/timezone"
)

func TestTimeZoneRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimeZone Repository Suite")
}

var _ = Describe("TimeZoneRepository", func() {
	var (
		db   *gorm.DB
		repo timezone.Repository
	)

	intptr := func(i int) *int { return &i }

	newZone := func(zoneID string, order int, active bool) *timezone.TimeZone {
		return &timezone.TimeZone{
			ZoneID:       zoneID,
			DisplayOrder: intptr(order),
			IsActive:     active,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&timezone.TimeZone{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewTimeZoneRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("GetAllActive", func() {
		It("should list active zones in display order", func() {
			Expect(db.Create(newZone("Asia/Kolkata", 2, true)).Error).To(Succeed())
			Expect(db.Create(newZone("UTC", 1, true)).Error).To(Succeed())
			Expect(db.Create(newZone("Etc/Retired", 3, false)).Error).To(Succeed())

			zones, err := repo.GetAllActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(zones).To(HaveLen(2))
			Expect(zones[0].ZoneID).To(Equal("UTC"))
			Expect(zones[1].ZoneID).To(Equal("Asia/Kolkata"))
		})
	})

	Describe("GetByID", func() {
		It("should load a zone by its id", func() {
			z := newZone("Asia/Singapore", 1, true)
			Expect(db.Create(z).Error).To(Succeed())

			got, err := repo.GetByID(z.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ZoneID).To(Equal("Asia/Singapore"))
		})

		It("should answer not found for an unknown id", func() {
			_, err := repo.GetByID(404)
			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeTimeZoneNotFound))
		})
	})

	Describe("GetByZoneID", func() {
		It("should resolve an IANA identifier", func() {
			Expect(db.Create(newZone("Asia/Kolkata", 1, true)).Error).To(Succeed())

			got, err := repo.GetByZoneID("Asia/Kolkata")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ZoneID).To(Equal("Asia/Kolkata"))
		})

		It("should answer not found for an unknown zone", func() {
			_, err := repo.GetByZoneID("Mars/Olympus_Mons")
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeTimeZoneNotFound))
		})
	})
})
