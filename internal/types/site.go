package types

import (
	"time"

	"github.com/google/uuid"
)

// Site scopes metrics rows for multi-tenant deployments.
type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Domain    string    `gorm:"column:domain;not null;uniqueIndex" json:"domain"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Site) TableName() string { return "site" }
