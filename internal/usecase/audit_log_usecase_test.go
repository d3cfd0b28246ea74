package usecase

import (
	"context"
	"testing"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]entity.AuditLog), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.AuditLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGetAllAuditLogs_NormalizesPage(t *testing.T) {
	tests := []struct {
		name       string
		page       dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"zero values", dto.PageRequest{}, 10, 0},
		{"third page", dto.PageRequest{Page: 3, Limit: 20}, 20, 40},
		{"limit capped", dto.PageRequest{Page: 1, Limit: 500}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAuditLogRepository)
			uc := NewAuditLogUsecase(newTestLogger(), repo)

			repo.On("FindAll", mock.Anything, tt.wantLimit, tt.wantOffset).
				Return([]entity.AuditLog{{ID: 7, Action: entity.AuditActionHospitalCreate}}, int64(41), nil)

			resp, err := uc.GetAllAuditLogs(context.Background(), tt.page)

			require.NoError(t, err)
			assert.Equal(t, int64(41), resp.Total)
			require.Len(t, resp.Logs, 1)
			assert.Equal(t, entity.AuditActionHospitalCreate, resp.Logs[0].Action)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetAuditLog_NotFound(t *testing.T) {
	repo := new(MockAuditLogRepository)
	uc := NewAuditLogUsecase(newTestLogger(), repo)

	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	_, err := uc.GetAuditLog(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
