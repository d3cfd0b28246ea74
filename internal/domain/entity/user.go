package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleName resolves the user's role, falling back to the seeded ID table
// when the relation was not preloaded.
func (u *User) RoleName() RoleName {
	if u.Role.RoleName != "" {
		return u.Role.RoleName
	}
	for name, id := range RoleIDs {
		if id == u.RoleID {
			return name
		}
	}
	return ""
}

// Active treats a missing flag as active, matching the column default
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
