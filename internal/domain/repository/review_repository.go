package repository

import (
	"context"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Review, error)
}
