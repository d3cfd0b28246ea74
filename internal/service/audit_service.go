package service

import (
	"context"

	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who changed what. Failures are logged and returned;
// callers treat them as non-fatal once the main write has committed.
type AuditService interface {
	LogCreate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.record(ctx, actorID, action, entityName, entityID, nil, newValue)
}

func (s *auditService) LogUpdate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.record(ctx, actorID, action, entityName, entityID, oldValue, newValue)
}

func (s *auditService) LogDelete(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.record(ctx, actorID, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) record(ctx context.Context, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		UserID: actorID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.WithFields(logrus.Fields{
			"action":    action,
			"entity":    entityName,
			"entity_id": entityID,
		}).Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
