package types

import (
	"time"
)

// CourseOverview mirrors the platform's course catalog record. The primary
// key is the opaque course key string, not a uuid, so metrics rows can refer
// to courses without a hard foreign key into platform internals.
type CourseOverview struct {
	ID               string     `gorm:"column:id;primaryKey" json:"id"`
	DisplayName      string     `gorm:"column:display_name;not null" json:"display_name"`
	Org              string     `gorm:"column:org;not null;index" json:"org"`
	Number           string     `gorm:"column:number" json:"number"`
	ShortDescription string     `gorm:"column:short_description" json:"short_description"`
	EnrollmentStart  *time.Time `gorm:"column:enrollment_start" json:"enrollment_start,omitempty"`
	EnrollmentEnd    *time.Time `gorm:"column:enrollment_end" json:"enrollment_end,omitempty"`
	Start            *time.Time `gorm:"column:start" json:"start,omitempty"`
	End              *time.Time `gorm:"column:end" json:"end,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseOverview) TableName() string { return "course_overview" }
