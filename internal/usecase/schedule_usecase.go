package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"see-a-doctor/internal/converter"
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/domain/repository"
	"see-a-doctor/internal/domain/slot"
	"see-a-doctor/internal/service"
	"see-a-doctor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrScheduleNotFound   = apperror.NotFound("schedule not found")
	ErrInvalidNumDays     = apperror.Validation("invalid number of days")
	ErrSlotIndexRange     = apperror.Validation("slot index out of range")
	ErrInvalidDaySchedule = apperror.Validation("invalid time slots")
)

type ScheduleUsecase interface {
	GenerateDefaultSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateScheduleRequest) (*dto.DayScheduleListResponse, error)
	GetSchedules(ctx context.Context, doctorID uuid.UUID, startDate string, numDays int) (*dto.DayScheduleListResponse, error)
	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DayScheduleResponse, error)
	SaveDaySchedule(ctx context.Context, doctorID uuid.UUID, date string, req *dto.SaveDayScheduleRequest) (*dto.DayScheduleResponse, error)
	SetSlotAvailability(ctx context.Context, doctorID uuid.UUID, date string, slotIndex int, available bool) (*dto.DayScheduleResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, chamberID *uuid.UUID) (*dto.AvailableSlotsResponse, error)
}

type scheduleUsecase struct {
	log               *logrus.Logger
	dayScheduleRepo   repository.DayScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	chamberRepo       repository.ChamberRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
	settings          BookingSettings
}

func NewScheduleUsecase(
	log *logrus.Logger,
	dayScheduleRepo repository.DayScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	chamberRepo repository.ChamberRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	settings BookingSettings,
) ScheduleUsecase {
	return &scheduleUsecase{
		log:               log,
		dayScheduleRepo:   dayScheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		chamberRepo:       chamberRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
		settings:          settings,
	}
}

// GenerateDefaultSchedule derives numDays days from the doctor's chamber
// hours. Nothing is persisted.
func (u *scheduleUsecase) GenerateDefaultSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateScheduleRequest) (*dto.DayScheduleListResponse, error) {
	doctor, err := u.authorizedDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	if err := u.checkNumDays(req.NumDays); err != nil {
		return nil, err
	}

	schedules := make([]dto.DayScheduleResponse, 0, req.NumDays)
	for i := 0; i < req.NumDays; i++ {
		date := start.AddDate(0, 0, i)
		day, fallback, err := u.buildDay(doctor, date)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, converter.DayScheduleToResponse(day, false, fallback))
	}

	return &dto.DayScheduleListResponse{
		Schedules: schedules,
		Total:     len(schedules),
	}, nil
}

// GetSchedules returns generated days with stored days laid over them
func (u *scheduleUsecase) GetSchedules(ctx context.Context, doctorID uuid.UUID, startDate string, numDays int) (*dto.DayScheduleListResponse, error) {
	doctor, err := u.authorizedDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	start := u.settings.today()
	if startDate != "" {
		if start, err = parseDate(startDate); err != nil {
			return nil, err
		}
	}
	if numDays == 0 {
		numDays = u.settings.ScheduleDays
	}
	if err := u.checkNumDays(numDays); err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, numDays-1)
	storedDays, err := u.dayScheduleRepo.ListByDoctorAndRange(ctx, doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to list day schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	byDate := make(map[string]*entity.DaySchedule, len(storedDays))
	for i := range storedDays {
		byDate[storedDays[i].Date.Format(entity.DateLayout)] = &storedDays[i]
	}

	schedules := make([]dto.DayScheduleResponse, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := start.AddDate(0, 0, i)
		if stored, ok := byDate[date.Format(entity.DateLayout)]; ok {
			schedules = append(schedules, converter.DayScheduleToResponse(stored, true, false))
			continue
		}

		day, fallback, err := u.buildDay(doctor, date)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, converter.DayScheduleToResponse(day, false, fallback))
	}

	return &dto.DayScheduleListResponse{
		Schedules: schedules,
		Total:     len(schedules),
	}, nil
}

func (u *scheduleUsecase) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DayScheduleResponse, error) {
	if _, err := u.authorizedDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	stored, err := u.dayScheduleRepo.Get(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find day schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}
	if stored == nil {
		return nil, ErrScheduleNotFound.Withf("no schedule saved for %s", date)
	}

	resp := converter.DayScheduleToResponse(stored, true, false)
	return &resp, nil
}

// SaveDaySchedule replaces the whole day
func (u *scheduleUsecase) SaveDaySchedule(ctx context.Context, doctorID uuid.UUID, date string, req *dto.SaveDayScheduleRequest) (*dto.DayScheduleResponse, error) {
	doctor, err := u.authorizedDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	ownChambers := make(map[uuid.UUID]bool, len(doctor.Chambers))
	for _, c := range doctor.Chambers {
		ownChambers[c.ID] = true
	}
	for i, s := range req.TimeSlots {
		start, err := slot.ParseClock(s.StartTime)
		if err != nil {
			return nil, ErrInvalidDaySchedule.Withf("time_slots[%d]: %v", i, err)
		}
		end, err := slot.ParseClock(s.EndTime)
		if err != nil {
			return nil, ErrInvalidDaySchedule.Withf("time_slots[%d]: %v", i, err)
		}
		if start >= end {
			return nil, ErrInvalidDaySchedule.Withf("time_slots[%d]: %v", i, slot.ErrInvalidWindow)
		}
		if s.ChamberID != nil && !ownChambers[*s.ChamberID] {
			return nil, ErrChamberNotFound
		}
	}

	generated, _, err := u.buildDay(doctor, day)
	if err != nil {
		return nil, err
	}
	for i, s := range req.TimeSlots {
		if !generated.Offers(s.ChamberID, s.StartTime, s.EndTime) {
			return nil, ErrInvalidDaySchedule.Withf("time_slots[%d]: %s-%s is not offered on %s",
				i, s.StartTime, s.EndTime, strings.ToLower(day.Weekday().String()))
		}
	}

	previous, err := u.dayScheduleRepo.Get(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find day schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	schedule := &entity.DaySchedule{
		DoctorID:  doctorID,
		Date:      day,
		TimeSlots: converter.TimeSlotsFromRequest(req.TimeSlots),
	}
	return u.put(ctx, schedule, previous)
}

// SetSlotAvailability flips one slot. A day that was never saved is
// materialised from the generated schedule first. Repeating the call with
// the same value leaves the day unchanged.
func (u *scheduleUsecase) SetSlotAvailability(ctx context.Context, doctorID uuid.UUID, date string, slotIndex int, available bool) (*dto.DayScheduleResponse, error) {
	doctor, err := u.authorizedDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	previous, err := u.dayScheduleRepo.Get(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find day schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	schedule := previous
	if schedule == nil {
		if schedule, _, err = u.buildDay(doctor, day); err != nil {
			return nil, err
		}
	} else {
		copied := *previous
		copied.TimeSlots = append(entity.TimeSlots(nil), previous.TimeSlots...)
		schedule = &copied
	}

	if slotIndex < 0 || slotIndex >= len(schedule.TimeSlots) {
		return nil, ErrSlotIndexRange.Withf("slot index %d out of range, day has %d slots", slotIndex, len(schedule.TimeSlots))
	}
	schedule.TimeSlots[slotIndex].IsAvailable = available

	return u.put(ctx, schedule, previous)
}

// GetAvailableSlots is the public booking view of one chamber on one date
func (u *scheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, chamberID *uuid.UUID) (*dto.AvailableSlotsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsAvailable() || !doctor.User.Active() {
		return nil, ErrDoctorUnavailable
	}

	chamber, err := resolveChamber(ctx, u.log, u.chamberRepo, doctorID, chamberID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailableSlotsResponse{
		Date:         day.Format(entity.DateLayout),
		ChamberID:    chamber.ID,
		Weekday:      day.Weekday().String(),
		SlotDuration: chamber.SlotDuration,
		Slots:        []dto.AvailableSlotResponse{},
	}

	intervals, err := chamber.SlotsOn(day)
	if err != nil {
		u.log.Warnf("Failed to generate slots for chamber %s: %+v", chamber.ID, err)
		return nil, err
	}
	if len(intervals) == 0 {
		resp.Message = "chamber closed on " + strings.ToLower(day.Weekday().String())
		return resp, nil
	}

	booked, err := u.appointmentRepo.FindActiveSlots(ctx, doctorID, chamber.ID, day)
	if err != nil {
		u.log.Warnf("Failed to find booked slots: %+v", err)
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, label := range booked {
		taken[label] = true
	}

	stored, err := u.dayScheduleRepo.Get(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find day schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	for _, in := range intervals {
		available := !taken[in.Start]
		if stored != nil {
			if s, ok := stored.Find(chamber.ID, in.Start); !ok || !s.IsAvailable {
				available = false
			}
		}
		resp.Slots = append(resp.Slots, dto.AvailableSlotResponse{
			StartTime:   in.Start,
			EndTime:     in.End,
			IsAvailable: available,
		})
	}

	return resp, nil
}

// buildDay generates a day from every chamber open on date's weekday. When
// the doctor has no chamber hours at all the fallback windows are used.
func (u *scheduleUsecase) buildDay(doctor *entity.DoctorProfile, date time.Time) (*entity.DaySchedule, bool, error) {
	day := &entity.DaySchedule{DoctorID: doctor.UserID, Date: date, TimeSlots: entity.TimeSlots{}}

	if !hasChamberHours(doctor.Chambers) {
		intervals, err := slot.ForWindows(slot.DefaultWindows, u.settings.DefaultSlotMinutes)
		if err != nil {
			return nil, false, err
		}
		day.TimeSlots = entity.SlotsFromIntervals(intervals, nil)
		return day, true, nil
	}

	for i := range doctor.Chambers {
		chamber := &doctor.Chambers[i]
		intervals, err := chamber.SlotsOn(date)
		if err != nil {
			u.log.Warnf("Failed to generate slots for chamber %s: %+v", chamber.ID, err)
			return nil, false, err
		}
		day.TimeSlots = append(day.TimeSlots, entity.SlotsFromIntervals(intervals, &chamber.ID)...)
	}
	sort.SliceStable(day.TimeSlots, func(i, j int) bool {
		return day.TimeSlots[i].StartTime < day.TimeSlots[j].StartTime
	})

	return day, false, nil
}

func hasChamberHours(chambers []entity.Chamber) bool {
	for _, c := range chambers {
		if len(c.Schedule) > 0 {
			return true
		}
	}
	return false
}

func (u *scheduleUsecase) put(ctx context.Context, schedule, previous *entity.DaySchedule) (*dto.DayScheduleResponse, error) {
	if err := u.dayScheduleRepo.Put(ctx, schedule); err != nil {
		u.log.Warnf("Failed to save day schedule for doctor %s: %+v", schedule.DoctorID, err)
		return nil, err
	}

	resp := converter.DayScheduleToResponse(schedule, true, false)

	var oldValue interface{}
	if previous != nil {
		oldValue = converter.TimeSlotsToResponses(previous.TimeSlots)
	}
	entityID := schedule.DoctorID.String() + "/" + schedule.Date.Format(entity.DateLayout)
	if err := u.auditService.LogUpdate(ctx, actorID(ctx), entity.AuditActionScheduleUpdate, "day_schedule", entityID, oldValue, resp.TimeSlots); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &resp, nil
}

func (u *scheduleUsecase) checkNumDays(numDays int) error {
	if numDays < 1 || numDays > u.settings.MaxScheduleDays {
		return ErrInvalidNumDays.Withf("num_days must be between 1 and %d", u.settings.MaxScheduleDays)
	}
	return nil
}

// authorizedDoctor loads the doctor for a schedule operation by the doctor
// themself or an admin
func (u *scheduleUsecase) authorizedDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if decision := entity.CanManageDoctor(principal, doctorID); !decision.Allowed {
		return nil, ErrDoctorForbidden
	}
	return u.findDoctor(ctx, doctorID)
}

func (u *scheduleUsecase) findDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
