package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hospital is a facility doctors can be affiliated with
type Hospital struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	City        string    `gorm:"type:varchar(100);not null;index" json:"city"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email       string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
