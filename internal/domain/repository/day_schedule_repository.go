package repository

import (
	"context"
	"time"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

// DayScheduleRepository is the availability store. Put replaces the whole
// document for (doctor, date).
type DayScheduleRepository interface {
	Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DaySchedule, error)
	Put(ctx context.Context, schedule *entity.DaySchedule) error
	ListByDoctorAndRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.DaySchedule, error)
}
