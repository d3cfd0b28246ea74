package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateHospitalRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateHospitalRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description" validate:"omitempty"`
	IsActive    *bool  `json:"is_active" validate:"omitempty"`
}

type HospitalFilterRequest struct {
	Name string
	City string
}

// Response DTOs

type HospitalResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}
