package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ScheduleEntryRequest struct {
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// ChamberRequest is used for both create and full update
type ChamberRequest struct {
	Name            string                 `json:"name" validate:"required,min=2,max=255"`
	Address         string                 `json:"address" validate:"required"`
	Contact         string                 `json:"contact" validate:"omitempty,max=50"`
	Schedule        []ScheduleEntryRequest `json:"schedule" validate:"omitempty,dive"`
	SlotDuration    int                    `json:"slot_duration" validate:"gte=0,lte=480"`
	ConsultationFee decimal.Decimal        `json:"consultation_fee"`
}

// Response DTOs

type ScheduleEntryResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ChamberResponse struct {
	ID              uuid.UUID               `json:"id"`
	DoctorID        uuid.UUID               `json:"doctor_id"`
	Name            string                  `json:"name"`
	Address         string                  `json:"address"`
	Contact         string                  `json:"contact,omitempty"`
	Schedule        []ScheduleEntryResponse `json:"schedule"`
	SlotDuration    int                     `json:"slot_duration"`
	ConsultationFee decimal.Decimal         `json:"consultation_fee"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type ChamberListResponse struct {
	Chambers []ChamberResponse `json:"chambers"`
	Total    int               `json:"total"`
}
