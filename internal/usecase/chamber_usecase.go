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
	ErrChamberNotFound = apperror.NotFound("chamber not found")
	ErrChamberInUse    = apperror.Conflict("chamber still has appointments")
	ErrInvalidSchedule = apperror.Validation("invalid chamber schedule")
)

type ChamberUsecase interface {
	ListChambers(ctx context.Context, doctorID uuid.UUID) (*dto.ChamberListResponse, error)
	GetChamber(ctx context.Context, doctorID, chamberID uuid.UUID) (*dto.ChamberResponse, error)
	CreateChamber(ctx context.Context, doctorID uuid.UUID, req *dto.ChamberRequest) (*dto.ChamberResponse, error)
	UpdateChamber(ctx context.Context, doctorID, chamberID uuid.UUID, req *dto.ChamberRequest) (*dto.ChamberResponse, error)
	DeleteChamber(ctx context.Context, doctorID, chamberID uuid.UUID) error
}

type chamberUsecase struct {
	log               *logrus.Logger
	chamberRepo       repository.ChamberRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	settings          BookingSettings
}

func NewChamberUsecase(
	log *logrus.Logger,
	chamberRepo repository.ChamberRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	settings BookingSettings,
) ChamberUsecase {
	return &chamberUsecase{
		log:               log,
		chamberRepo:       chamberRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		settings:          settings,
	}
}

// ListChambers is public so patients can pick a practice location
func (u *chamberUsecase) ListChambers(ctx context.Context, doctorID uuid.UUID) (*dto.ChamberListResponse, error) {
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	chambers, err := u.chamberRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find chambers for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ChamberListResponse{
		Chambers: converter.ChambersToResponses(chambers),
		Total:    len(chambers),
	}, nil
}

func (u *chamberUsecase) GetChamber(ctx context.Context, doctorID, chamberID uuid.UUID) (*dto.ChamberResponse, error) {
	chamber, err := u.findChamber(ctx, doctorID, chamberID)
	if err != nil {
		return nil, err
	}
	return converter.ChamberToResponse(chamber), nil
}

func (u *chamberUsecase) CreateChamber(ctx context.Context, doctorID uuid.UUID, req *dto.ChamberRequest) (*dto.ChamberResponse, error) {
	principal, err := u.authorize(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	chamber := &entity.Chamber{DoctorID: doctorID}
	if err := u.apply(chamber, req); err != nil {
		return nil, err
	}

	if err := u.chamberRepo.Create(ctx, chamber); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create chamber: %+v", err)
		return nil, err
	}

	resp := converter.ChamberToResponse(chamber)
	if err := u.auditService.LogCreate(ctx, &principal.UserID, entity.AuditActionChamberCreate, "chamber", chamber.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

// UpdateChamber replaces every field, including the weekly schedule
func (u *chamberUsecase) UpdateChamber(ctx context.Context, doctorID, chamberID uuid.UUID, req *dto.ChamberRequest) (*dto.ChamberResponse, error) {
	principal, err := u.authorize(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	chamber, err := u.findChamber(ctx, doctorID, chamberID)
	if err != nil {
		return nil, err
	}
	oldValue := converter.ChamberToResponse(chamber)

	if err := u.apply(chamber, req); err != nil {
		return nil, err
	}

	if err := u.chamberRepo.Update(ctx, chamber); err != nil {
		u.log.Warnf("Failed to update chamber %s: %+v", chamberID, err)
		return nil, err
	}

	resp := converter.ChamberToResponse(chamber)
	if err := u.auditService.LogUpdate(ctx, &principal.UserID, entity.AuditActionChamberUpdate, "chamber", chamberID.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *chamberUsecase) DeleteChamber(ctx context.Context, doctorID, chamberID uuid.UUID) error {
	principal, err := u.authorize(ctx, doctorID)
	if err != nil {
		return err
	}

	chamber, err := u.findChamber(ctx, doctorID, chamberID)
	if err != nil {
		return err
	}

	rows, err := u.chamberRepo.Delete(ctx, chamberID)
	if err != nil {
		if isForeignKeyError(err, "appointments") {
			return ErrChamberInUse
		}
		u.log.Warnf("Failed to delete chamber %s: %+v", chamberID, err)
		return err
	}
	if rows == 0 {
		return ErrChamberNotFound
	}

	if err := u.auditService.LogDelete(ctx, &principal.UserID, entity.AuditActionChamberDelete, "chamber", chamberID.String(), converter.ChamberToResponse(chamber)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *chamberUsecase) apply(chamber *entity.Chamber, req *dto.ChamberRequest) error {
	chamber.Name = req.Name
	chamber.Address = req.Address
	chamber.Contact = req.Contact
	chamber.Schedule = converter.ScheduleFromRequest(req.Schedule)
	chamber.SlotDuration = req.SlotDuration
	chamber.ConsultationFee = req.ConsultationFee

	if chamber.SlotDuration == 0 {
		chamber.SlotDuration = u.settings.DefaultSlotMinutes
	}
	if chamber.ConsultationFee.IsNegative() {
		return ErrInvalidSchedule.Withf("consultation fee must not be negative")
	}
	if err := chamber.Validate(); err != nil {
		return ErrInvalidSchedule.Withf("invalid chamber schedule: %v", err)
	}
	return nil
}

func (u *chamberUsecase) authorize(ctx context.Context, doctorID uuid.UUID) (entity.Principal, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return entity.Principal{}, err
	}
	if decision := entity.CanManageDoctor(principal, doctorID); !decision.Allowed {
		return entity.Principal{}, ErrDoctorForbidden
	}
	return principal, nil
}

func (u *chamberUsecase) ensureDoctor(ctx context.Context, doctorID uuid.UUID) error {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}
	return nil
}

// findChamber treats a chamber of another doctor as missing
func (u *chamberUsecase) findChamber(ctx context.Context, doctorID, chamberID uuid.UUID) (*entity.Chamber, error) {
	chamber, err := u.chamberRepo.FindByID(ctx, chamberID)
	if err != nil {
		u.log.Warnf("Failed to find chamber %s: %+v", chamberID, err)
		return nil, err
	}
	if chamber == nil || chamber.DoctorID != doctorID {
		return nil, ErrChamberNotFound
	}
	return chamber, nil
}
