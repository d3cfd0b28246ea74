package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6"`
	FullName        string     `json:"full_name" validate:"required,min=2"`
	Phone           string     `json:"phone" validate:"omitempty,min=6,max=20"`
	HospitalID      *uuid.UUID `json:"hospital_id" validate:"omitempty"`
	LicenseNumber   string     `json:"license_number" validate:"required,max=50"`
	Specialization  string     `json:"specialization" validate:"required,max=100"`
	Qualification   string     `json:"qualification" validate:"omitempty,max=255"`
	Biography       string     `json:"biography" validate:"omitempty"`
	ExperienceYears int        `json:"experience_years" validate:"gte=0,lte=80"`
}

type UpdateDoctorRequest struct {
	Email           string     `json:"email" validate:"omitempty,email"`
	Password        string     `json:"password" validate:"omitempty,min=6"`
	FullName        string     `json:"full_name" validate:"omitempty,min=2"`
	Phone           string     `json:"phone" validate:"omitempty,min=6,max=20"`
	HospitalID      *uuid.UUID `json:"hospital_id" validate:"omitempty"`
	LicenseNumber   string     `json:"license_number" validate:"omitempty,max=50"`
	Specialization  string     `json:"specialization" validate:"omitempty,max=100"`
	Qualification   string     `json:"qualification" validate:"omitempty,max=255"`
	Biography       string     `json:"biography" validate:"omitempty"`
	ExperienceYears *int       `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	IsActive        *bool      `json:"is_active" validate:"omitempty"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// DoctorFilterRequest holds query parameters for doctor search
type DoctorFilterRequest struct {
	Name           string
	Specialization string
	HospitalID     *uuid.UUID
	Available      *bool
	PageRequest
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID         `json:"id"`
	Email           string            `json:"email"`
	FullName        string            `json:"full_name"`
	Phone           string            `json:"phone,omitempty"`
	LicenseNumber   string            `json:"license_number"`
	Specialization  string            `json:"specialization"`
	Qualification   string            `json:"qualification,omitempty"`
	Biography       string            `json:"biography,omitempty"`
	ExperienceYears int               `json:"experience_years"`
	Available       bool              `json:"available"`
	IsActive        bool              `json:"is_active"`
	Hospital        *HospitalResponse `json:"hospital,omitempty"`
	Chambers        []ChamberResponse `json:"chambers,omitempty"`
	Rating          *RatingResponse   `json:"rating,omitempty"`
}

type RatingResponse struct {
	Average     float64 `json:"average"`
	ReviewCount int64   `json:"review_count"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int64            `json:"total"`
}
