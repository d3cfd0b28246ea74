package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role represents a user role in the system
type Role struct {
	ID          int      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleName is the name a principal acts under
type RoleName string

const (
	RoleAdmin  RoleName = "admin"
	RoleDoctor RoleName = "doctor"
	RoleUser   RoleName = "user"
	RoleStaff  RoleName = "staff"
)

// Role ID constants, seeded by the initial migration
const (
	RoleIDAdmin  = 1
	RoleIDDoctor = 2
	RoleIDUser   = 3
	RoleIDStaff  = 4
)

// RoleIDs maps role names to their seeded IDs
var RoleIDs = map[RoleName]int{
	RoleAdmin:  RoleIDAdmin,
	RoleDoctor: RoleIDDoctor,
	RoleUser:   RoleIDUser,
	RoleStaff:  RoleIDStaff,
}

// Principal is the authenticated caller
type Principal struct {
	UserID uuid.UUID
	Role   RoleName
}

// Decision is the result of a capability check
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow and Deny build decisions
func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// RequireRole allows p when it acts under one of roles.
func RequireRole(p Principal, roles ...RoleName) Decision {
	if p.UserID == uuid.Nil || p.Role == "" {
		return Deny("no authenticated principal")
	}
	for _, r := range roles {
		if p.Role == r {
			return Allow()
		}
	}

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return Deny(fmt.Sprintf("role %q is not one of [%s]", p.Role, strings.Join(names, ", ")))
}

// CanManageDoctor allows admins and the doctor themself.
func CanManageDoctor(p Principal, doctorID uuid.UUID) Decision {
	if d := RequireRole(p, RoleAdmin); d.Allowed {
		return d
	}
	if d := RequireRole(p, RoleDoctor); !d.Allowed {
		return d
	}
	if p.UserID != doctorID {
		return Deny("doctors may only manage their own records")
	}
	return Allow()
}
