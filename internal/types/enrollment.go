package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseEnrollment records a user registering for a course. Created is set
// by the platform, not by this service, so it is a plain column rather than
// an autoCreateTime field. A learner can carry more than one enrollment row
// for the same course; the pipeline treats that as a data warning.
type CourseEnrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID  string    `gorm:"column:course_id;not null;index:idx_course_enrollment_course" json:"course_id"`
	Created   time.Time `gorm:"column:created;not null" json:"created"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Mode      string    `gorm:"column:mode;not null;default:'audit'" json:"mode"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseEnrollment) TableName() string { return "course_enrollment" }
