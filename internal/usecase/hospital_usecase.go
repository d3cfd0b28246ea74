package usecase

import (
	"context"

	"see-a-doctor/internal/converter"
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/domain/repository"
	"see-a-doctor/internal/service"
	"see-a-doctor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrHospitalNotFound = apperror.NotFound("hospital not found")
)

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error)
	GetAllHospitals(ctx context.Context, filter *dto.HospitalFilterRequest) (*dto.HospitalListResponse, error)
	UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, id uuid.UUID) error
}

type hospitalUsecase struct {
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
}

func NewHospitalUsecase(log *logrus.Logger, hospitalRepo repository.HospitalRepository, auditService service.AuditService) HospitalUsecase {
	return &hospitalUsecase{
		log:          log,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
	}
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital := &entity.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
	}

	if err := u.hospitalRepo.Create(ctx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	resp := converter.HospitalToResponse(hospital)
	if err := u.auditService.LogCreate(ctx, actorID(ctx), entity.AuditActionHospitalCreate, "hospital", hospital.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	hospital, err := u.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetAllHospitals(ctx context.Context, filter *dto.HospitalFilterRequest) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(ctx, filter.Name, filter.City)
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := u.findHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	oldValue := converter.HospitalToResponse(hospital)

	if req.Name != "" {
		hospital.Name = req.Name
	}
	if req.Address != "" {
		hospital.Address = req.Address
	}
	if req.City != "" {
		hospital.City = req.City
	}
	if req.Phone != "" {
		hospital.Phone = req.Phone
	}
	if req.Email != "" {
		hospital.Email = req.Email
	}
	if req.Description != "" {
		hospital.Description = req.Description
	}
	if req.IsActive != nil {
		hospital.IsActive = req.IsActive
	}

	if err := u.hospitalRepo.Update(ctx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital %s: %+v", id, err)
		return nil, err
	}

	resp := converter.HospitalToResponse(hospital)
	if err := u.auditService.LogUpdate(ctx, actorID(ctx), entity.AuditActionHospitalUpdate, "hospital", id.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

// DeleteHospital detaches affiliated doctors (ON DELETE SET NULL)
func (u *hospitalUsecase) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	hospital, err := u.findHospital(ctx, id)
	if err != nil {
		return err
	}

	rows, err := u.hospitalRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete hospital %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrHospitalNotFound
	}

	if err := u.auditService.LogDelete(ctx, actorID(ctx), entity.AuditActionHospitalDelete, "hospital", id.String(), converter.HospitalToResponse(hospital)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *hospitalUsecase) findHospital(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	hospital, err := u.hospitalRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", id, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}
