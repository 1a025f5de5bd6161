package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseDailyMetrics holds one day of aggregate figures for one course.
// Rows are written only by the pipeline loader, keyed by (course_id,
// date_for). AverageProgress is a 0..1 fraction and nullable, as is
// AverageDaysToComplete, since both are undefined until a course has
// enrollments or completions.
type CourseDailyMetrics struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID                *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Site                  *Site      `gorm:"constraint:OnDelete:SET NULL;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	DateFor               time.Time  `gorm:"column:date_for;type:date;not null;uniqueIndex:idx_course_daily_metrics_course_date" json:"date_for"`
	CourseID              string     `gorm:"column:course_id;not null;uniqueIndex:idx_course_daily_metrics_course_date" json:"course_id"`
	EnrollmentCount       int        `gorm:"column:enrollment_count;not null" json:"enrollment_count"`
	ActiveLearnersToday   int        `gorm:"column:active_learners_today;not null" json:"active_learners_today"`
	AverageProgress       *float64   `gorm:"column:average_progress" json:"average_progress,omitempty"`
	AverageDaysToComplete *int       `gorm:"column:average_days_to_complete" json:"average_days_to_complete,omitempty"`
	NumLearnersCompleted  int        `gorm:"column:num_learners_completed;not null" json:"num_learners_completed"`
	CreatedAt             time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseDailyMetrics) TableName() string { return "course_daily_metrics" }
