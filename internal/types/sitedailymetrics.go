package types

import (
	"time"

	"github.com/google/uuid"
)

// SiteDailyMetrics holds one day of site-wide figures. Unique per
// (site_id, date_for): daily metrics are site scoped.
type SiteDailyMetrics struct {
	ID                        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID                    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_site_daily_metrics_site_date" json:"site_id"`
	Site                      *Site     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	DateFor                   time.Time `gorm:"column:date_for;type:date;not null;uniqueIndex:idx_site_daily_metrics_site_date" json:"date_for"`
	CumulativeActiveUserCount *int      `gorm:"column:cumulative_active_user_count" json:"cumulative_active_user_count,omitempty"`
	TodaysActiveUserCount     *int      `gorm:"column:todays_active_user_count" json:"todays_active_user_count,omitempty"`
	TotalUserCount            int       `gorm:"column:total_user_count;not null" json:"total_user_count"`
	CourseCount               int       `gorm:"column:course_count;not null" json:"course_count"`
	TotalEnrollmentCount      int       `gorm:"column:total_enrollment_count;not null" json:"total_enrollment_count"`
	CreatedAt                 time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                 time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SiteDailyMetrics) TableName() string { return "site_daily_metrics" }
