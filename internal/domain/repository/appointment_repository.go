package repository

import (
	"context"
	"time"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	// Create fails with a unique violation on entity.ActiveSlotConstraint
	// when the slot is already held by a non-cancelled appointment
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindActiveBySlot(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	FindActiveSlots(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time) ([]string, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctor(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveFrom pages through non-cancelled appointments dated on or after from
	FindActiveFrom(ctx context.Context, from time.Time, limit, offset int) ([]entity.Appointment, error)
	// TransitionStatus moves id from one status to another only if it is
	// still in from. It returns the number of rows changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	HasCompleted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
}
