package types

import (
	"time"

	"github.com/google/uuid"
)

// StudentModule is the platform's courseware-interaction record. Modified is
// the activity signal the pipeline reads for daily active learner counts.
type StudentModule struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID   string    `gorm:"column:course_id;not null;index" json:"course_id"`
	ModuleID   string    `gorm:"column:module_id;not null" json:"module_id"`
	ModuleType string    `gorm:"column:module_type;not null;default:'problem'" json:"module_type"`
	Created    time.Time `gorm:"column:created;not null" json:"created"`
	Modified   time.Time `gorm:"column:modified;not null;index" json:"modified"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StudentModule) TableName() string { return "student_module" }
