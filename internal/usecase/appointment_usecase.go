package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"see-a-doctor/internal/converter"
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/domain/repository"
	"see-a-doctor/internal/domain/slot"
	"see-a-doctor/internal/infrastructure/metrics"
	"see-a-doctor/internal/service"
	"see-a-doctor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound  = apperror.NotFound("appointment not found")
	ErrSlotAlreadyBooked    = apperror.Conflict("slot already booked")
	ErrDoctorUnavailable    = apperror.Validation("doctor is not available")
	ErrChamberRequired      = apperror.Validation("chamber_id is required for doctors with several chambers")
	ErrNoChamber            = apperror.Validation("doctor has no chamber")
	ErrChamberClosed        = apperror.Validation("chamber is closed on this day")
	ErrInvalidTimeSlot      = apperror.Validation("time slot is not offered by this chamber")
	ErrSlotBlocked          = apperror.Validation("time slot is not available on this date")
	ErrPastDate             = apperror.Validation("cannot book a past date")
	ErrInvalidTransition    = apperror.Validation("invalid status transition")
	ErrStatusChanged        = apperror.Conflict("appointment status was changed concurrently")
	ErrAppointmentForbidden = apperror.Authorization("you cannot access this appointment")
	ErrInvalidStatus        = apperror.Validation("invalid appointment status")
	ErrInvalidScope         = apperror.Validation("scope must be one of today, upcoming, all")
)

// bookingCodeAttempts bounds retries on a booking code collision
const bookingCodeAttempts = 3

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, req *dto.DoctorAppointmentsRequest) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	chamberRepo       repository.ChamberRepository
	dayScheduleRepo   repository.DayScheduleRepository
	claimer           service.SlotClaimer
	metrics           *metrics.Collector
	auditService      service.AuditService
	settings          BookingSettings
}

// NewAppointmentUsecase wires the booking flow. claimer may be nil, in which
// case the unique index alone guards each slot.
func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	chamberRepo repository.ChamberRepository,
	dayScheduleRepo repository.DayScheduleRepository,
	claimer service.SlotClaimer,
	collector *metrics.Collector,
	auditService service.AuditService,
	settings BookingSettings,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		chamberRepo:       chamberRepo,
		dayScheduleRepo:   dayScheduleRepo,
		claimer:           claimer,
		metrics:           collector,
		auditService:      auditService,
		settings:          settings,
	}
}

// CreateAppointment books one slot.
//
// Flow:
// 1. Validate date, doctor, chamber and that the slot is offered and open
// 2. Claim the slot in Redis (fast path, fails open)
// 3. Insert; the partial unique index on active slots is the final guard
// 4. If the insert fails for any reason but a slot conflict -> release the claim
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if decision := entity.RequireRole(principal, entity.RoleUser, entity.RoleStaff, entity.RoleAdmin); !decision.Allowed {
		return nil, apperror.Authorization(decision.Reason)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.Before(u.settings.today()) {
		u.metrics.RecordBooking(metrics.BookingRejected)
		return nil, ErrPastDate
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsAvailable() || !doctor.User.Active() {
		u.metrics.RecordBooking(metrics.BookingRejected)
		return nil, ErrDoctorUnavailable
	}

	chamber, err := resolveChamber(ctx, u.log, u.chamberRepo, doctor.UserID, req.ChamberID)
	if err != nil {
		return nil, err
	}

	if err := u.checkSlotOpen(ctx, chamber, date, req.TimeSlot); err != nil {
		u.metrics.RecordBooking(metrics.BookingRejected)
		return nil, err
	}

	consultationType := entity.ConsultationInPerson
	if req.ConsultationType != "" {
		consultationType = entity.ConsultationType(req.ConsultationType)
	}
	patientID := principal.UserID

	appointment := &entity.Appointment{
		ID:               uuid.New(),
		DoctorID:         doctor.UserID,
		ChamberID:        chamber.ID,
		PatientID:        &patientID,
		PatientName:      req.PatientName,
		PatientPhone:     req.PatientPhone,
		PatientEmail:     req.PatientEmail,
		PatientAge:       req.PatientAge,
		PatientGender:    req.PatientGender,
		Problem:          req.Problem,
		ConsultationType: consultationType,
		AppointmentType:  entity.AppointmentType(req.AppointmentType),
		Date:             date,
		TimeSlot:         req.TimeSlot,
		Status:           entity.AppointmentStatusPending,
		Fee:              chamber.ConsultationFee,
	}

	key := service.SlotKeyOf(appointment)
	claimed, err := u.claimSlot(ctx, key, appointment.ID)
	if err != nil {
		return nil, err
	}

	if err := u.insert(ctx, appointment); err != nil {
		// A unique-index conflict means another row holds the slot; the claim
		// stays for it
		if isDuplicateKeyError(err, entity.ActiveSlotConstraint) {
			u.metrics.RecordBooking(metrics.BookingConflict)
			return nil, ErrSlotAlreadyBooked
		}
		if claimed {
			u.releaseClaim(key, appointment.ID)
		}
		u.metrics.RecordBooking(metrics.BookingFailed)
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}
	u.metrics.RecordBooking(metrics.BookingCreated)

	appointment.Doctor = doctor
	appointment.Chamber = chamber
	resp := converter.AppointmentToResponse(appointment)

	if err := u.auditService.LogCreate(ctx, &principal.UserID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, slot=%s, code=%s",
		appointment.ID, appointment.DoctorID, req.Date, appointment.TimeSlot, appointment.BookingCode)
	return resp, nil
}

// checkSlotOpen verifies the chamber offers label on date and that the
// stored day schedule has not blocked it
func (u *appointmentUsecase) checkSlotOpen(ctx context.Context, chamber *entity.Chamber, date time.Time, label string) error {
	intervals, err := chamber.SlotsOn(date)
	if err != nil {
		u.log.Warnf("Failed to generate slots for chamber %s: %+v", chamber.ID, err)
		return err
	}
	if len(intervals) == 0 {
		return ErrChamberClosed.Withf("chamber is closed on %s", date.Weekday())
	}
	if !slot.Contains(intervals, label) {
		return ErrInvalidTimeSlot.Withf("time slot %s is not offered by this chamber on %s", label, date.Weekday())
	}

	stored, err := u.dayScheduleRepo.Get(ctx, chamber.DoctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find day schedule: %+v", err)
		return err
	}
	// A saved day lists the slots that exist; anything it drops is closed
	if stored != nil {
		if s, ok := stored.Find(chamber.ID, label); !ok || !s.IsAvailable {
			return ErrSlotBlocked
		}
	}
	return nil
}

// claimSlot reports whether this call now holds the Redis claim. A claim
// held for a live appointment is a conflict; an orphaned one is taken over.
func (u *appointmentUsecase) claimSlot(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) (bool, error) {
	if u.claimer == nil {
		return false, nil
	}

	ok, err := u.claimer.Claim(ctx, key, appointmentID)
	if err != nil {
		u.log.Warnf("Slot claim unavailable for %s, falling back to database: %+v", key, err)
		u.metrics.RecordClaim(metrics.ClaimUnavailable)
		return false, nil
	}
	if ok {
		u.metrics.RecordClaim(metrics.ClaimAcquired)
		return true, nil
	}

	existing, err := u.appointmentRepo.FindActiveBySlot(ctx, key.DoctorID, key.ChamberID, key.Date, key.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot holder for %s: %+v", key, err)
		return false, err
	}
	if existing != nil {
		u.metrics.RecordClaim(metrics.ClaimHeld)
		u.metrics.RecordBooking(metrics.BookingConflict)
		return false, ErrSlotAlreadyBooked
	}

	if err := u.claimer.Takeover(ctx, key, appointmentID); err != nil {
		u.log.Warnf("Failed to take over stale claim %s: %+v", key, err)
		u.metrics.RecordClaim(metrics.ClaimUnavailable)
		return false, nil
	}
	u.metrics.RecordClaim(metrics.ClaimTakenOver)
	return true, nil
}

func (u *appointmentUsecase) releaseClaim(key service.SlotKey, appointmentID uuid.UUID) {
	if u.claimer == nil {
		return
	}
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.claimer.Release(releaseCtx, key, appointmentID); err != nil {
		u.log.Warnf("Failed to release slot claim %s (non-fatal): %+v", key, err)
	}
}

// insert retries only when the random booking code collides
func (u *appointmentUsecase) insert(ctx context.Context, appointment *entity.Appointment) error {
	var err error
	for attempt := 0; attempt < bookingCodeAttempts; attempt++ {
		appointment.BookingCode = generateBookingCode(appointment.Date)
		err = u.appointmentRepo.Create(ctx, appointment)
		if err == nil || !isDuplicateKeyError(err, "booking_code") {
			return err
		}
		u.log.Warnf("Booking code %s collided, retrying", appointment.BookingCode)
	}
	return err
}

// UpdateStatus moves an appointment through its lifecycle with a
// compare-and-set on the current status
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if decision := entity.RequireRole(principal, entity.RoleDoctor, entity.RoleAdmin, entity.RoleStaff); !decision.Allowed {
		return nil, apperror.Authorization(decision.Reason)
	}

	next, ok := entity.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus.Withf("invalid appointment status %q", req.Status)
	}

	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if principal.Role == entity.RoleDoctor && appointment.DoctorID != principal.UserID {
		return nil, ErrAppointmentForbidden
	}

	current := appointment.Status
	if !current.CanTransitionTo(next) {
		return nil, ErrInvalidTransition.Withf("invalid status transition from %s to %s", current, next)
	}

	rows, err := u.appointmentRepo.TransitionStatus(ctx, appointmentID, current, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		latest, err := u.appointmentRepo.FindByID(ctx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
			return nil, err
		}
		if latest == nil {
			return nil, ErrAppointmentNotFound
		}
		return nil, ErrStatusChanged.Withf("appointment status changed from %s to %s concurrently", current, latest.Status)
	}
	u.metrics.RecordTransition(string(current), string(next))

	appointment.Status = next
	if next == entity.AppointmentStatusCancelled {
		u.releaseClaim(service.SlotKeyOf(appointment), appointment.ID)
	}

	if err := u.auditService.LogUpdate(ctx, &principal.UserID, entity.AuditActionAppointmentStatus, "appointment", appointmentID.String(),
		map[string]string{"status": string(current)}, map[string]string{"status": string(next)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ownsBooking := appointment.PatientID != nil && *appointment.PatientID == principal.UserID
	if !ownsBooking &&
		!entity.CanManageDoctor(principal, appointment.DoctorID).Allowed &&
		!entity.RequireRole(principal, entity.RoleStaff).Allowed {
		return nil, ErrAppointmentForbidden
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", principal.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments lists by scope. "today" is every status today,
// "upcoming" is pending or confirmed from today on, "all" is unfiltered.
// A date narrows any scope to that single day.
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, req *dto.DoctorAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !entity.CanManageDoctor(principal, doctorID).Allowed && !entity.RequireRole(principal, entity.RoleStaff).Allowed {
		return nil, ErrAppointmentForbidden
	}

	filter := entity.AppointmentFilter{DoctorID: doctorID}
	today := u.settings.today()

	scope := entity.AppointmentScope(req.Scope)
	if scope == "" {
		scope = entity.AppointmentScopeUpcoming
	}
	switch scope {
	case entity.AppointmentScopeToday:
		filter.From, filter.To = &today, &today
	case entity.AppointmentScopeUpcoming:
		filter.From = &today
		filter.Statuses = []entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}
	case entity.AppointmentScopeAll:
	default:
		return nil, ErrInvalidScope
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &date, &date
	}

	appointments, err := u.appointmentRepo.FindByDoctor(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// resolveChamber picks the chamber a request refers to. Without an explicit
// id the doctor's only chamber is used.
func resolveChamber(ctx context.Context, log *logrus.Logger, chamberRepo repository.ChamberRepository, doctorID uuid.UUID, chamberID *uuid.UUID) (*entity.Chamber, error) {
	if chamberID != nil {
		chamber, err := chamberRepo.FindByID(ctx, *chamberID)
		if err != nil {
			log.Warnf("Failed to find chamber %s: %+v", *chamberID, err)
			return nil, err
		}
		if chamber == nil || chamber.DoctorID != doctorID {
			return nil, ErrChamberNotFound
		}
		return chamber, nil
	}

	chambers, err := chamberRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		log.Warnf("Failed to find chambers for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	switch len(chambers) {
	case 0:
		return nil, ErrNoChamber
	case 1:
		return &chambers[0], nil
	default:
		return nil, ErrChamberRequired
	}
}

// generateBookingCode generates a booking code: BK-YYYYMMDD-XXXXXX
func generateBookingCode(date time.Time) string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("BK-%s-%06X", date.Format("20060102"), randomBytes)
}
