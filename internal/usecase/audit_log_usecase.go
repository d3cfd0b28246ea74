package usecase

import (
	"context"

	"see-a-doctor/internal/converter"
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/repository"
	"see-a-doctor/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrAuditLogNotFound = apperror.NotFound("audit log not found")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, page dto.PageRequest) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.Normalize()

	logs, total, err := u.auditLogRepo.FindAll(ctx, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
