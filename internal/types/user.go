package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username   string       `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Email      string       `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password   string       `gorm:"column:password;not null" json:"-"`
	IsActive   bool         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsStaff    bool         `gorm:"column:is_staff;not null;default:false" json:"is_staff"`
	DateJoined time.Time    `gorm:"column:date_joined;not null;default:now()" json:"date_joined"`
	Profile    *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"profile,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// UserProfile carries the optional demographic fields the platform
// collects alongside the account record.
type UserProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name             string    `gorm:"column:name" json:"name"`
	Country          string    `gorm:"column:country" json:"country"`
	YearOfBirth      *int      `gorm:"column:year_of_birth" json:"year_of_birth,omitempty"`
	Gender           string    `gorm:"column:gender" json:"gender"`
	LevelOfEducation string    `gorm:"column:level_of_education" json:"level_of_education"`
	Language         string    `gorm:"column:language" json:"language"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
