package repository

import (
	"context"
	"errors"
	"time"

	"see-a-doctor/internal/domain/entity"
	domainRepo "see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dayScheduleRepository struct {
	db *gorm.DB
}

func NewDayScheduleRepository(db *gorm.DB) domainRepo.DayScheduleRepository {
	return &dayScheduleRepository{db: db}
}

func (r *dayScheduleRepository) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DaySchedule, error) {
	var schedule entity.DaySchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format(entity.DateLayout)).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// Put upserts on (doctor_id, date) and overwrites the whole slot list
func (r *dayScheduleRepository) Put(ctx context.Context, schedule *entity.DaySchedule) error {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_slots", "updated_at"}),
	}).Create(schedule).Error
}

func (r *dayScheduleRepository) ListByDoctorAndRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.DaySchedule, error) {
	var schedules []entity.DaySchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date BETWEEN ? AND ?", doctorID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Order("date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
