package usecase

import (
	"context"
	"sync"
	"time"

	"see-a-doctor/internal/delivery/http/middleware"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveBySlot(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	args := m.Called(ctx, doctorID, chamberID, date, timeSlot)
	if v := args.Get(0); v != nil {
		return v.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveSlots(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time) ([]string, error) {
	args := m.Called(ctx, doctorID, chamberID, date)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctor(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveFrom(ctx context.Context, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	args := m.Called(ctx, from, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) HasCompleted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

// MockDoctorProfileRepository is a mock implementation of DoctorProfileRepository
type MockDoctorProfileRepository struct {
	mock.Mock
}

func (m *MockDoctorProfileRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockDoctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*entity.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorProfileRepository) Search(ctx context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]entity.DoctorProfile), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockDoctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockDoctorProfileRepository) SetAvailable(ctx context.Context, userID uuid.UUID, available bool) (int64, error) {
	args := m.Called(ctx, userID, available)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDoctorProfileRepository) RatingSummaries(ctx context.Context, doctorIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error) {
	args := m.Called(ctx, doctorIDs)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID]entity.RatingSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockChamberRepository is a mock implementation of ChamberRepository
type MockChamberRepository struct {
	mock.Mock
}

func (m *MockChamberRepository) Create(ctx context.Context, chamber *entity.Chamber) error {
	args := m.Called(ctx, chamber)
	return args.Error(0)
}

func (m *MockChamberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Chamber, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Chamber), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChamberRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Chamber, error) {
	args := m.Called(ctx, doctorID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Chamber), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChamberRepository) Update(ctx context.Context, chamber *entity.Chamber) error {
	args := m.Called(ctx, chamber)
	return args.Error(0)
}

func (m *MockChamberRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockDayScheduleRepository is a mock implementation of DayScheduleRepository
type MockDayScheduleRepository struct {
	mock.Mock
}

func (m *MockDayScheduleRepository) Get(ctx context.Context, doctorID uuid.UUID, date time.Time) (*entity.DaySchedule, error) {
	args := m.Called(ctx, doctorID, date)
	if v := args.Get(0); v != nil {
		return v.(*entity.DaySchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDayScheduleRepository) Put(ctx context.Context, schedule *entity.DaySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockDayScheduleRepository) ListByDoctorAndRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.DaySchedule, error) {
	args := m.Called(ctx, doctorID, from, to)
	if v := args.Get(0); v != nil {
		return v.([]entity.DaySchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Review, error) {
	args := m.Called(ctx, doctorID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSlotClaimer is a mock implementation of service.SlotClaimer
type MockSlotClaimer struct {
	mock.Mock
}

func (m *MockSlotClaimer) Claim(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, key, appointmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotClaimer) Takeover(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) error {
	args := m.Called(ctx, key, appointmentID)
	return args.Error(0)
}

func (m *MockSlotClaimer) Release(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) error {
	args := m.Called(ctx, key, appointmentID)
	return args.Error(0)
}

// recordingAuditService keeps actions in memory
type recordingAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (s *recordingAuditService) LogCreate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.record(action)
}

func (s *recordingAuditService) LogUpdate(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.record(action)
}

func (s *recordingAuditService) LogDelete(ctx context.Context, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.record(action)
}

func (s *recordingAuditService) record(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return nil
}

func (s *recordingAuditService) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

// memoryAppointmentRepository enforces the active-slot unique index in
// memory so concurrent bookings race the way they do against Postgres
type memoryAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]entity.Appointment
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{appointments: make(map[uuid.UUID]entity.Appointment)}
}

func sameSlot(a, b *entity.Appointment) bool {
	return a.DoctorID == b.DoctorID && a.ChamberID == b.ChamberID &&
		a.Date.Equal(b.Date) && a.TimeSlot == b.TimeSlot
}

func (r *memoryAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.IsActive() && sameSlot(&existing, appointment) {
			return &pgconn.PgError{Code: "23505", ConstraintName: entity.ActiveSlotConstraint}
		}
		if existing.BookingCode == appointment.BookingCode {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_booking_code"}
		}
	}
	stored := *appointment
	stored.Doctor, stored.Chamber = nil, nil
	r.appointments[appointment.ID] = stored
	return nil
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memoryAppointmentRepository) FindActiveBySlot(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	probe := &entity.Appointment{DoctorID: doctorID, ChamberID: chamberID, Date: date, TimeSlot: timeSlot}
	for _, a := range r.appointments {
		if a.IsActive() && sameSlot(&a, probe) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memoryAppointmentRepository) FindActiveSlots(ctx context.Context, doctorID, chamberID uuid.UUID, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var slots []string
	for _, a := range r.appointments {
		if a.IsActive() && a.DoctorID == doctorID && a.ChamberID == chamberID && a.Date.Equal(date) {
			slots = append(slots, a.TimeSlot)
		}
	}
	return slots, nil
}

func (r *memoryAppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID != nil && *a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *memoryAppointmentRepository) FindByDoctor(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == filter.DoctorID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *memoryAppointmentRepository) FindActiveFrom(ctx context.Context, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *memoryAppointmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	r.appointments[id] = a
	return 1, nil
}

func (r *memoryAppointmentRepository) HasCompleted(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	return false, nil
}

func (r *memoryAppointmentRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

// memorySlotClaimer mirrors the Redis SET NX claim
type memorySlotClaimer struct {
	mu     sync.Mutex
	claims map[string]uuid.UUID
}

func newMemorySlotClaimer() *memorySlotClaimer {
	return &memorySlotClaimer{claims: make(map[string]uuid.UUID)}
}

func (c *memorySlotClaimer) Claim(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, held := c.claims[key.String()]; held {
		return false, nil
	}
	c.claims[key.String()] = appointmentID
	return true, nil
}

func (c *memorySlotClaimer) Takeover(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.claims[key.String()] = appointmentID
	return nil
}

func (c *memorySlotClaimer) Release(ctx context.Context, key service.SlotKey, appointmentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.claims[key.String()] == appointmentID {
		delete(c.claims, key.String())
	}
	return nil
}

func (c *memorySlotClaimer) holder(key service.SlotKey) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.claims[key.String()]
	return id, ok
}

func newTestLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func asPrincipal(role entity.RoleName, userID uuid.UUID) context.Context {
	return middleware.WithPrincipal(context.Background(), entity.Principal{UserID: userID, Role: role})
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func testSettings(clock string) BookingSettings {
	return BookingSettings{
		Location:           time.UTC,
		DefaultSlotMinutes: 30,
		ScheduleDays:       7,
		MaxScheduleDays:    31,
		Clock:              fixedClock(clock),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
