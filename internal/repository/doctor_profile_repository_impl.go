package repository

import (
	"context"
	"errors"

	"see-a-doctor/internal/domain/entity"
	domainRepo "see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

// Create inserts the user row and then the profile in one transaction
func (r *doctorProfileRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&profile.User).Error; err != nil {
			return err
		}
		profile.UserID = profile.User.ID
		return tx.Omit(clause.Associations).Create(profile).Error
	})
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Hospital").
		Preload("Chambers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Search returns doctors whose user account is active, with optional filters
func (r *doctorProfileRepository) Search(ctx context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if filter.Name != "" {
		query = query.Where("users.full_name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Specialization != "" {
		query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
	}
	if filter.HospitalID != nil {
		query = query.Where("doctor_profiles.hospital_id = ?", *filter.HospitalID)
	}
	if filter.Available != nil {
		query = query.Where("doctor_profiles.available = ?", *filter.Available)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.DoctorProfile
	err := query.
		Preload("User").
		Preload("Hospital").
		Order("users.full_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Update saves the profile and its user row in one transaction
func (r *doctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&profile.User).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(profile).Error
	})
}

func (r *doctorProfileRepository) SetAvailable(ctx context.Context, userID uuid.UUID, available bool) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Where("user_id = ?", userID).
		Update("available", available)
	return result.RowsAffected, result.Error
}

func (r *doctorProfileRepository) RatingSummaries(ctx context.Context, doctorIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error) {
	summaries := make(map[uuid.UUID]entity.RatingSummary, len(doctorIDs))
	if len(doctorIDs) == 0 {
		return summaries, nil
	}

	var rows []entity.RatingSummary
	err := r.db.WithContext(ctx).Model(&entity.Review{}).
		Select("doctor_id, AVG(rating) AS average, COUNT(*) AS review_count").
		Where("doctor_id IN ?", doctorIDs).
		Group("doctor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.DoctorID] = row
	}
	return summaries, nil
}
