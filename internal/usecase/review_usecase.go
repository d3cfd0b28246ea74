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
	ErrAlreadyReviewed    = apperror.Conflict("you have already reviewed this doctor")
	ErrNoCompletedVisit   = apperror.Validation("you can only review a doctor after a completed appointment")
	ErrReviewerNotPatient = apperror.Authorization("only patients can review doctors")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, doctorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	log               *logrus.Logger
	reviewRepo        repository.ReviewRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
}

func NewReviewUsecase(
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) ReviewUsecase {
	return &reviewUsecase{
		log:               log,
		reviewRepo:        reviewRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, doctorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if decision := entity.RequireRole(principal, entity.RoleUser); !decision.Allowed {
		return nil, ErrReviewerNotPatient
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	completed, err := u.appointmentRepo.HasCompleted(ctx, doctorID, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to check completed appointments: %+v", err)
		return nil, err
	}
	if !completed {
		return nil, ErrNoCompletedVisit
	}

	review := &entity.Review{
		DoctorID:  doctorID,
		PatientID: principal.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := u.reviewRepo.Create(ctx, review); err != nil {
		if isDuplicateKeyError(err, "uq_reviews_doctor_patient") {
			return nil, ErrAlreadyReviewed
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	resp := converter.ReviewToResponse(review)
	if err := u.auditService.LogCreate(ctx, &principal.UserID, entity.AuditActionReviewCreate, "review", review.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *reviewUsecase) GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	reviews, err := u.reviewRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}
