package repository

import (
	"context"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	// Create inserts the profile together with its embedded user
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	Search(ctx context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, int64, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	SetAvailable(ctx context.Context, userID uuid.UUID, available bool) (int64, error)
	RatingSummaries(ctx context.Context, doctorIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error)
}
