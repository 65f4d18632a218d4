package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	"github.com/ropereralk/enterprise-directory/internal/core/entity"
)

func TestEntity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entity Suite")
}

var _ = Describe("Audit", func() {
	var (
		creator uuid.UUID
		now     time.Time
	)

	BeforeEach(func() {
		creator = uuid.New()
		now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	})

	It("should start active at version zero with no modification stamps", func() {
		a := entity.NewAudit(now, creator)

		Expect(a.IsActive).To(BeTrue())
		Expect(a.Version).To(Equal(int64(0)))
		Expect(a.CreatedAt).To(Equal(now))
		Expect(a.CreatedBy).To(Equal(creator))
		Expect(a.LastModifiedAt).To(BeNil())
		Expect(a.Deleted()).To(BeFalse())
	})

	Describe("Touch", func() {
		It("should stamp the modifier without changing the version", func() {
			a := entity.NewAudit(now, creator)
			modifier := uuid.New()
			later := now.Add(time.Hour)

			a.Touch(later, modifier)

			Expect(a.LastModifiedAt).ToNot(BeNil())
			Expect(*a.LastModifiedAt).To(Equal(later))
			Expect(*a.LastModifiedBy).To(Equal(modifier))
			Expect(a.Version).To(Equal(int64(0)))
		})
	})

	Describe("Delete", func() {
		It("should record who deleted and force the record inactive", func() {
			a := entity.NewAudit(now, creator)
			deleter := uuid.New()
			later := now.Add(time.Hour)

			Expect(a.Delete(later, deleter)).To(Succeed())

			Expect(a.Deleted()).To(BeTrue())
			Expect(*a.Deletion.At).To(Equal(later))
			Expect(*a.Deletion.By).To(Equal(deleter))
			Expect(a.IsActive).To(BeFalse())
		})

		It("should fail on a second delete", func() {
			a := entity.NewAudit(now, creator)
			Expect(a.Delete(now, creator)).To(Succeed())

			err := a.Delete(now.Add(time.Minute), creator)
			Expect(err).To(MatchError(entity.ErrAlreadyDeleted))
		})
	})
})

var _ = Describe("ExternalRef", func() {
	s := "SAP"
	id := "1001"
	blank := "  "

	It("should be set only when both parts are present", func() {
		Expect(entity.ExternalRef{System: &s, ID: &id}.IsSet()).To(BeTrue())
		Expect(entity.ExternalRef{}.IsSet()).To(BeFalse())
	})

	It("should be partial when exactly one part is present", func() {
		Expect(entity.ExternalRef{System: &s}.IsPartial()).To(BeTrue())
		Expect(entity.ExternalRef{ID: &id}.IsPartial()).To(BeTrue())
		Expect(entity.ExternalRef{System: &s, ID: &id}.IsPartial()).To(BeFalse())
		Expect(entity.ExternalRef{}.IsPartial()).To(BeFalse())
	})

	It("should treat a blank part as absent", func() {
		Expect(entity.ExternalRef{System: &blank, ID: &id}.IsPartial()).To(BeTrue())
		Expect(entity.ExternalRef{System: &blank, ID: &id}.IsSet()).To(BeFalse())
	})
})

var _ = Describe("Date", func() {
	It("should marshal as a plain calendar date", func() {
		d := entity.NewDate(2026, time.March, 1)

		out, err := json.Marshal(d)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(Equal(`"2026-03-01"`))
	})

	It("should unmarshal from a plain calendar date", func() {
		var d entity.Date
		Expect(json.Unmarshal([]byte(`"1900-01-01"`), &d)).To(Succeed())
		Expect(d.String()).To(Equal("1900-01-01"))
	})

	It("should order dates", func() {
		earlier := entity.NewDate(2026, time.March, 1)
		later := entity.NewDate(2026, time.March, 2)

		Expect(earlier.Before(later)).To(BeTrue())
		Expect(later.After(earlier)).To(BeTrue())
		Expect(earlier.Before(earlier)).To(BeFalse())
	})
})
