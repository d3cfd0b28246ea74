package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	HospitalID      *uuid.UUID `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	LicenseNumber   string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string     `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification   string     `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	Biography       string     `gorm:"type:text" json:"biography,omitempty"`
	ExperienceYears int        `gorm:"not null;default:0" json:"experience_years"`
	Available       *bool      `gorm:"not null;default:true;index" json:"available"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Chambers []Chamber `gorm:"foreignKey:DoctorID" json:"chambers,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsAvailable reports whether the doctor accepts bookings
func (d *DoctorProfile) IsAvailable() bool {
	return d.Available == nil || *d.Available
}

// RatingSummary aggregates reviews for one doctor
type RatingSummary struct {
	DoctorID    uuid.UUID
	Average     float64
	ReviewCount int64
}

// DoctorFilter is a domain-level filter for searching doctors.
// Used by repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Name           string     // ILIKE on full name
	Specialization string     // ILIKE on specialization
	HospitalID     *uuid.UUID // exact match
	Available      *bool
	Limit          int
	Offset         int
}
