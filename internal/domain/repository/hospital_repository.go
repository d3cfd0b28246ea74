package repository

import (
	"context"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

type HospitalRepository interface {
	Create(ctx context.Context, hospital *entity.Hospital) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	FindAll(ctx context.Context, name, city string) ([]entity.Hospital, error)
	Update(ctx context.Context, hospital *entity.Hospital) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
