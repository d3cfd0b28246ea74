package repository

import (
	"context"
	"errors"

	"see-a-doctor/internal/domain/entity"
	domainRepo "see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type chamberRepository struct {
	db *gorm.DB
}

func NewChamberRepository(db *gorm.DB) domainRepo.ChamberRepository {
	return &chamberRepository{db: db}
}

func (r *chamberRepository) Create(ctx context.Context, chamber *entity.Chamber) error {
	return r.db.WithContext(ctx).Create(chamber).Error
}

func (r *chamberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Chamber, error) {
	var chamber entity.Chamber
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chamber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chamber, nil
}

func (r *chamberRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Chamber, error) {
	var chambers []entity.Chamber
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("created_at ASC").Find(&chambers).Error
	if err != nil {
		return nil, err
	}
	return chambers, nil
}

func (r *chamberRepository) Update(ctx context.Context, chamber *entity.Chamber) error {
	return r.db.WithContext(ctx).Save(chamber).Error
}

// Delete fails with a foreign key violation while appointments reference the chamber
func (r *chamberRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Chamber{})
	return result.RowsAffected, result.Error
}
