package types

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedCertificate marks a learner completing a course. CreatedDate is
// the issue instant the pipeline compares against enrollment creation.
type GeneratedCertificate struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID    string    `gorm:"column:course_id;not null;index" json:"course_id"`
	CreatedDate time.Time `gorm:"column:created_date;not null;index" json:"created_date"`
	Grade       string    `gorm:"column:grade" json:"grade"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (GeneratedCertificate) TableName() string { return "generated_certificate" }
