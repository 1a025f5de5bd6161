package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Pipeline error categories.
const (
	PipelineErrorUnspecified = "UNSPECIFIED"
	PipelineErrorGrades      = "GRADES"
	PipelineErrorCourse      = "COURSE"
	PipelineErrorSite        = "SITE"
)

// PipelineError is an append-only log of pipeline failures and data
// warnings. ErrorData is an opaque structured payload; course/user/site
// columns exist for convenient querying, not referential integrity.
type PipelineError struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ErrorType string         `gorm:"column:error_type;not null;default:'UNSPECIFIED';index" json:"error_type"`
	ErrorData datatypes.JSON `gorm:"column:error_data;type:jsonb" json:"error_data"`
	CourseID  string         `gorm:"column:course_id;index" json:"course_id"`
	UserID    *uuid.UUID     `gorm:"type:uuid" json:"user_id,omitempty"`
	User      *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SiteID    *uuid.UUID     `gorm:"type:uuid" json:"site_id,omitempty"`
	Site      *Site          `gorm:"constraint:OnDelete:SET NULL;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (PipelineError) TableName() string { return "pipeline_error" }
