package timezone

import (
	errors "github.com/ropereralk/enterprise-directory/internal"
)

// TimeZone is a row of reference data describing a zone offices can be
// placed in. ZoneID is the IANA identifier and stays compatible with
// time.LoadLocation.
type TimeZone struct {
	ID               int     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ZoneID           string  `json:"zone_id" gorm:"column:zone_id;size:50;uniqueIndex;not null"`
	CountryCode      *string `json:"country_code,omitempty" gorm:"column:country_code;size:2"`
	DisplayName      *string `json:"display_name,omitempty" gorm:"column:display_name;size:100"`
	UTCOffsetMinutes *int    `json:"utc_offset_minutes,omitempty" gorm:"column:utc_offset_minutes"`
	Abbreviation     *string `json:"abbreviation,omitempty" gorm:"column:abbreviation;size:10"`
	Region           *string `json:"region,omitempty" gorm:"column:region;size:50"`
	Description      *string `json:"description,omitempty" gorm:"column:description;size:255"`
	ObservesDST      *bool   `json:"observes_dst,omitempty" gorm:"column:observes_dst"`
	DisplayOrder     *int    `json:"display_order,omitempty" gorm:"column:display_order"`
	IsActive         bool    `json:"is_active" gorm:"column:is_active;not null"`
}

func (TimeZone) TableName() string {
	return "org_time_zone"
}

func NotFoundError(key interface{}) *errors.AppError {
	return errors.NewNotFoundError("time zone not found", errors.ErrCodeTimeZoneNotFound).
		WithDetails(map[string]interface{}{"entity": "TimeZone", "key": key})
}
