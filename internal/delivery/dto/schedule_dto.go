package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type GenerateScheduleRequest struct {
	StartDate string `json:"start_date" validate:"required,isodate"`
	NumDays   int    `json:"num_days" validate:"required,gte=1"`
}

type TimeSlotRequest struct {
	StartTime   string     `json:"start_time" validate:"required,clock"`
	EndTime     string     `json:"end_time" validate:"required,clock"`
	ChamberID   *uuid.UUID `json:"chamber_id" validate:"omitempty"`
	IsAvailable bool       `json:"is_available"`
}

type SaveDayScheduleRequest struct {
	TimeSlots []TimeSlotRequest `json:"time_slots" validate:"required,dive"`
}

type SlotAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// Response DTOs

type TimeSlotResponse struct {
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	ChamberID   *uuid.UUID `json:"chamber_id,omitempty"`
	IsAvailable bool       `json:"is_available"`
}

type DayScheduleResponse struct {
	DoctorID  uuid.UUID          `json:"doctor_id"`
	Date      string             `json:"date"`
	Weekday   string             `json:"weekday"`
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	// Stored is false for days generated on the fly from chamber hours
	Stored bool `json:"stored"`
	// Fallback marks days built from the default hours because the doctor
	// has no chamber schedule at all
	Fallback bool `json:"fallback,omitempty"`
}

type DayScheduleListResponse struct {
	Schedules []DayScheduleResponse `json:"schedules"`
	Total     int                   `json:"total"`
}

type AvailableSlotResponse struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailableSlotsResponse struct {
	Date         string                  `json:"date"`
	ChamberID    uuid.UUID               `json:"chamber_id"`
	Weekday      string                  `json:"weekday"`
	SlotDuration int                     `json:"slot_duration"`
	Slots        []AvailableSlotResponse `json:"slots"`
	Message      string                  `json:"message,omitempty"`
}
