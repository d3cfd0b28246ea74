package repository

import (
	"context"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

type ChamberRepository interface {
	Create(ctx context.Context, chamber *entity.Chamber) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Chamber, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Chamber, error)
	Update(ctx context.Context, chamber *entity.Chamber) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
