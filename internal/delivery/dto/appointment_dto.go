package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID         uuid.UUID  `json:"doctor_id" validate:"required"`
	ChamberID        *uuid.UUID `json:"chamber_id" validate:"omitempty"`
	Date             string     `json:"date" validate:"required,isodate"`
	TimeSlot         string     `json:"time_slot" validate:"required,clock"`
	PatientName      string     `json:"patient_name" validate:"required,min=2,max=255"`
	PatientPhone     string     `json:"patient_phone" validate:"required,min=6,max=20"`
	PatientEmail     string     `json:"patient_email" validate:"omitempty,email"`
	PatientAge       *int       `json:"patient_age" validate:"omitempty,gte=0,lte=150"`
	PatientGender    string     `json:"patient_gender" validate:"omitempty,oneof=male female other"`
	Problem          string     `json:"problem" validate:"omitempty,max=2000"`
	ConsultationType string     `json:"consultation_type" validate:"omitempty,oneof=in_person online"`
	AppointmentType  string     `json:"appointment_type" validate:"required,oneof=new follow_up report"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show"`
}

type DoctorAppointmentsRequest struct {
	Scope string
	Date  string
}

// Response DTOs

type AppointmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	BookingCode      string          `json:"booking_code"`
	DoctorID         uuid.UUID       `json:"doctor_id"`
	DoctorName       string          `json:"doctor_name,omitempty"`
	ChamberID        uuid.UUID       `json:"chamber_id"`
	ChamberName      string          `json:"chamber_name,omitempty"`
	PatientID        *uuid.UUID      `json:"patient_id,omitempty"`
	PatientName      string          `json:"patient_name"`
	PatientPhone     string          `json:"patient_phone"`
	PatientEmail     string          `json:"patient_email,omitempty"`
	PatientAge       *int            `json:"patient_age,omitempty"`
	PatientGender    string          `json:"patient_gender,omitempty"`
	Problem          string          `json:"problem,omitempty"`
	ConsultationType string          `json:"consultation_type"`
	AppointmentType  string          `json:"appointment_type"`
	Date             string          `json:"date"`
	TimeSlot         string          `json:"time_slot"`
	Status           string          `json:"status"`
	Fee              decimal.Decimal `json:"fee"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
