package repository

import (
	"context"
	"errors"
	"time"

	"see-a-doctor/internal/domain/entity"
	domainRepo "see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create is a single insert. The partial unique index on active slots makes
// it fail instead of double-booking.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Omit("Doctor", "Chamber").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Chamber").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveBySlot(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND chamber_id = ? AND date = ? AND time_slot = ? AND status <> ?",
			doctorID, chamberID, date.Format(entity.DateLayout), timeSlot, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveSlots(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND chamber_id = ? AND date = ? AND status <> ?",
			doctorID, chamberID, date.Format(entity.DateLayout), entity.AppointmentStatusCancelled).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Chamber").
		Where("patient_id = ?", patientID).
		Order("date DESC, time_slot DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctor(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := r.db.WithContext(ctx).
		Preload("Chamber").
		Where("doctor_id = ?", filter.DoctorID)

	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.Format(entity.DateLayout))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.Format(entity.DateLayout))
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var appointments []entity.Appointment
	if err := query.Order("date ASC, time_slot ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveFrom(ctx context.Context, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND status <> ?", from.Format(entity.DateLayout), entity.AppointmentStatusCancelled).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// TransitionStatus is a compare-and-set: 1 = moved, 0 = status changed
// underneath us or the appointment does not exist.
func (r *appointmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) HasCompleted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND patient_id = ? AND status = ?", doctorID, patientID, entity.AppointmentStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
