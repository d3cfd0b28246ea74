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
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDoctorNotFound        = apperror.NotFound("doctor not found")
	ErrDoctorEmailExists     = apperror.Conflict("email already exists")
	ErrDoctorLicenseExists   = apperror.Conflict("license number already exists")
	ErrDoctorHasAppointments = apperror.Conflict("doctor still has appointments")
	ErrDoctorForbidden       = apperror.Authorization("you cannot manage this doctor")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	SearchDoctors(ctx context.Context, req *dto.DoctorFilterRequest) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
	SetAvailability(ctx context.Context, doctorID uuid.UUID, available bool) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	// User and profile are inserted in one transaction
	doctorProfile := &entity.DoctorProfile{
		HospitalID:      req.HospitalID,
		LicenseNumber:   req.LicenseNumber,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		Biography:       req.Biography,
		ExperienceYears: req.ExperienceYears,
		User: entity.User{
			Email:    req.Email,
			Password: string(hashedPassword),
			FullName: req.FullName,
			Phone:    req.Phone,
			RoleID:   entity.RoleIDDoctor,
		},
	}
	if err := u.doctorProfileRepo.Create(ctx, doctorProfile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrDoctorLicenseExists
		}
		if isForeignKeyError(err, "hospital") {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	resp := converter.DoctorProfileToResponse(doctorProfile)
	if err := u.auditService.LogCreate(ctx, actorID(ctx), entity.AuditActionDoctorCreate, "doctor_profile", doctorProfile.UserID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	resp := converter.DoctorProfileToResponse(profile)

	ratings, err := u.doctorProfileRepo.RatingSummaries(ctx, []uuid.UUID{doctorID})
	if err != nil {
		u.log.Warnf("Failed to load rating for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	summary := ratings[doctorID]
	resp.Rating = converter.RatingToResponse(summary)

	return resp, nil
}

func (u *doctorUsecase) SearchDoctors(ctx context.Context, req *dto.DoctorFilterRequest) (*dto.DoctorListResponse, error) {
	req.Normalize()

	filter := entity.DoctorFilter{
		Name:           req.Name,
		Specialization: req.Specialization,
		HospitalID:     req.HospitalID,
		Available:      req.Available,
		Limit:          req.Limit,
		Offset:         req.Offset(),
	}

	profiles, total, err := u.doctorProfileRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].UserID
	}

	ratings, err := u.doctorProfileRepo.RatingSummaries(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to load doctor ratings: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles, ratings),
		Total:   total,
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	profile, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	oldValue := converter.DoctorProfileToResponse(profile)

	if req.Email != "" {
		profile.User.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		profile.User.Password = string(hashedPassword)
	}
	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}
	if req.Phone != "" {
		profile.User.Phone = req.Phone
	}
	if req.IsActive != nil {
		profile.User.IsActive = req.IsActive
	}
	if req.HospitalID != nil {
		profile.HospitalID = req.HospitalID
		profile.Hospital = nil
	}
	if req.LicenseNumber != "" {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		profile.Qualification = req.Qualification
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}

	if err := u.doctorProfileRepo.Update(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrDoctorLicenseExists
		}
		if isForeignKeyError(err, "hospital") {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	resp := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, actorID(ctx), entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

// DeleteDoctor removes the user row; the profile, chambers and schedules
// cascade. Appointments restrict the delete.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error {
	profile, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return err
	}

	rows, err := u.userRepo.Delete(ctx, doctorID)
	if err != nil {
		if isForeignKeyError(err, "appointments") {
			return ErrDoctorHasAppointments
		}
		u.log.Warnf("Failed to delete doctor %s: %+v", doctorID, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	if err := u.auditService.LogDelete(ctx, actorID(ctx), entity.AuditActionDoctorDelete, "doctor_profile", doctorID.String(), converter.DoctorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// SetAvailability toggles whether the doctor accepts bookings. Only the
// doctor themself or an admin may change it.
func (u *doctorUsecase) SetAvailability(ctx context.Context, doctorID uuid.UUID, available bool) (*dto.DoctorResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if decision := entity.CanManageDoctor(principal, doctorID); !decision.Allowed {
		return nil, ErrDoctorForbidden
	}

	rows, err := u.doctorProfileRepo.SetAvailable(ctx, doctorID, available)
	if err != nil {
		u.log.Warnf("Failed to set availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &principal.UserID, entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(),
		map[string]bool{"available": !available}, map[string]bool{"available": available}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) findDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return profile, nil
}
