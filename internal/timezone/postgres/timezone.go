package postgres

import (
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal/timezone"
)

// TimeZoneRepository implements the timezone.Repository interface using GORM
type TimeZoneRepository struct {
	db *gorm.DB
}

func NewTimeZoneRepository(db *gorm.DB) timezone.Repository {
	return &TimeZoneRepository{db: db}
}

// GetAllActive lists the zones open for selection, display order first so
// the rows land in dropdowns as curated.
func (r *TimeZoneRepository) GetAllActive() ([]*timezone.TimeZone, error) {
	var zones []*timezone.TimeZone
	err := r.db.Where("is_active = ?", true).
		Order("display_order ASC, zone_id ASC").
		Find(&zones).Error
	return zones, err
}

func (r *TimeZoneRepository) GetByID(id int) (*timezone.TimeZone, error) {
	var zone timezone.TimeZone
	err := r.db.Where("id = ?", id).First(&zone).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, timezone.NotFoundError(id)
		}
		return nil, err
	}
	return &zone, nil
}

func (r *TimeZoneRepository) GetByZoneID(zoneID string) (*timezone.TimeZone, error) {
	var zone timezone.TimeZone
	err := r.db.Where("zone_id = ?", zoneID).First(&zone).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, timezone.NotFoundError(zoneID)
		}
		return nil, err
	}
	return &zone, nil
}
