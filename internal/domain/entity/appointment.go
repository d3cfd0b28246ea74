package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ActiveSlotConstraint is the partial unique index that keeps one
// non-cancelled appointment per doctor, chamber, date and slot.
const ActiveSlotConstraint = "uq_appointments_active_slot"

// appointmentTransitions lists every allowed move. Statuses absent as keys are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// ParseAppointmentStatus validates a status name
func ParseAppointmentStatus(value string) (AppointmentStatus, bool) {
	switch s := AppointmentStatus(value); s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return s, true
	}
	return "", false
}

// CanTransitionTo reports whether s may move to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

type ConsultationType string

const (
	ConsultationInPerson ConsultationType = "in_person"
	ConsultationOnline   ConsultationType = "online"
)

type AppointmentType string

const (
	AppointmentTypeNew      AppointmentType = "new"
	AppointmentTypeFollowUp AppointmentType = "follow_up"
	AppointmentTypeReport   AppointmentType = "report"
)

// Appointment is a patient's reservation of one slot
type Appointment struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingCode      string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	DoctorID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ChamberID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"chamber_id"`
	PatientID        *uuid.UUID        `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName      string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientPhone     string            `gorm:"type:varchar(20);not null" json:"patient_phone"`
	PatientEmail     string            `gorm:"type:varchar(255)" json:"patient_email,omitempty"`
	PatientAge       *int              `json:"patient_age,omitempty"`
	PatientGender    string            `gorm:"type:varchar(10)" json:"patient_gender,omitempty"`
	Problem          string            `gorm:"type:text" json:"problem,omitempty"`
	ConsultationType ConsultationType  `gorm:"type:varchar(20);not null;default:'in_person'" json:"consultation_type"`
	AppointmentType  AppointmentType   `gorm:"type:varchar(20);not null" json:"appointment_type"`
	Date             time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot         string            `gorm:"type:varchar(5);not null" json:"time_slot"`
	Status           AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Fee              decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"fee"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Chamber *Chamber       `gorm:"foreignKey:ChamberID" json:"chamber,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}

// AppointmentScope selects a doctor's appointment list
type AppointmentScope string

const (
	AppointmentScopeToday    AppointmentScope = "today"
	AppointmentScopeUpcoming AppointmentScope = "upcoming"
	AppointmentScopeAll      AppointmentScope = "all"
)

// AppointmentFilter is a domain-level filter for listing a doctor's appointments.
type AppointmentFilter struct {
	DoctorID uuid.UUID
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Statuses []AppointmentStatus
}
