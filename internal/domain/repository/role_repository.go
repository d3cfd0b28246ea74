package repository

import (
	"context"

	"see-a-doctor/internal/domain/entity"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
