package types

import (
	"time"

	"github.com/google/uuid"
)

// LearnerCourseGradeMetrics caches a learner's grading-section progress for
// a course on a given date so the pipeline and API do not recompute grades
// on every request. Unique per (user_id, course_id, date_for).
type LearnerCourseGradeMetrics struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID           *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Site             *Site      `gorm:"constraint:OnDelete:SET NULL;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	DateFor          time.Time  `gorm:"column:date_for;type:date;not null;uniqueIndex:idx_learner_course_grade_metrics_key" json:"date_for"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_learner_course_grade_metrics_key" json:"user_id"`
	User             *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID         string     `gorm:"column:course_id;not null;uniqueIndex:idx_learner_course_grade_metrics_key" json:"course_id"`
	PointsPossible   float64    `gorm:"column:points_possible;not null" json:"points_possible"`
	PointsEarned     float64    `gorm:"column:points_earned;not null" json:"points_earned"`
	SectionsWorked   int        `gorm:"column:sections_worked;not null" json:"sections_worked"`
	SectionsPossible int        `gorm:"column:sections_possible;not null" json:"sections_possible"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearnerCourseGradeMetrics) TableName() string { return "learner_course_grade_metrics" }

// ProgressPercent is sections worked over sections possible. Sections
// possible can be zero when a course has no graded sections; the fraction
// is defined as 0 in that case.
func (m *LearnerCourseGradeMetrics) ProgressPercent() float64 {
	if m.SectionsPossible == 0 {
		return 0.0
	}
	return float64(m.SectionsWorked) / float64(m.SectionsPossible)
}
