package usecase

import (
	"testing"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChamberFixture() (ChamberUsecase, *MockChamberRepository, *MockDoctorProfileRepository) {
	chambers := new(MockChamberRepository)
	doctors := new(MockDoctorProfileRepository)
	uc := NewChamberUsecase(newTestLogger(), chambers, doctors, &recordingAuditService{}, testSettings(bookingClock))
	return uc, chambers, doctors
}

func chamberRequest() *dto.ChamberRequest {
	return &dto.ChamberRequest{
		Name:    "Labaid Specialized",
		Address: "House 1, Road 4, Dhanmondi",
		Schedule: []dto.ScheduleEntryRequest{
			{Day: "saturday", StartTime: "17:00", EndTime: "21:00"},
			{Day: "Monday", StartTime: "17:00", EndTime: "21:00"},
		},
		ConsultationFee: decimal.RequireFromString("1000.00"),
	}
}

func TestCreateChamber_AppliesDefaultsAndNormalisesDays(t *testing.T) {
	doctorID := uuid.New()
	uc, chambers, doctors := newChamberFixture()
	doctors.On("FindByUserID", mock.Anything, doctorID).Return(availableDoctor(doctorID), nil)
	chambers.On("Create", mock.Anything, mock.AnythingOfType("*entity.Chamber")).Return(nil)

	resp, err := uc.CreateChamber(asPrincipal(entity.RoleDoctor, doctorID), doctorID, chamberRequest())

	require.NoError(t, err)
	assert.Equal(t, doctorID, resp.DoctorID)
	assert.Equal(t, 30, resp.SlotDuration)
	assert.Equal(t, "Saturday", resp.Schedule[0].Day)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.ConsultationFee))
}

func TestCreateChamber_InvalidSchedule(t *testing.T) {
	doctorID := uuid.New()

	tests := []struct {
		name   string
		mutate func(req *dto.ChamberRequest)
	}{
		{"reversed hours", func(req *dto.ChamberRequest) { req.Schedule[0].EndTime = "16:00" }},
		{"unknown weekday", func(req *dto.ChamberRequest) { req.Schedule[1].Day = "Funday" }},
		{"negative duration", func(req *dto.ChamberRequest) { req.SlotDuration = -10 }},
		{"negative fee", func(req *dto.ChamberRequest) { req.ConsultationFee = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, chambers, doctors := newChamberFixture()
			doctors.On("FindByUserID", mock.Anything, doctorID).Return(availableDoctor(doctorID), nil)

			req := chamberRequest()
			tt.mutate(req)
			_, err := uc.CreateChamber(asPrincipal(entity.RoleAdmin, uuid.New()), doctorID, req)

			assert.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			chambers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateChamber_OtherDoctorForbidden(t *testing.T) {
	uc, _, doctors := newChamberFixture()

	_, err := uc.CreateChamber(asPrincipal(entity.RoleDoctor, uuid.New()), uuid.New(), chamberRequest())

	assert.ErrorIs(t, err, ErrDoctorForbidden)
	doctors.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestUpdateChamber_ReplacesSchedule(t *testing.T) {
	doctorID := uuid.New()
	existing := sundayChamber(doctorID)
	uc, chambers, _ := newChamberFixture()
	chambers.On("FindByID", mock.Anything, existing.ID).Return(&existing, nil)
	chambers.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Chamber) bool {
		return c.ID == existing.ID && len(c.Schedule) == 2 && c.Schedule[0].Day == "Saturday"
	})).Return(nil)

	resp, err := uc.UpdateChamber(asPrincipal(entity.RoleDoctor, doctorID), doctorID, existing.ID, chamberRequest())

	require.NoError(t, err)
	assert.Equal(t, "Labaid Specialized", resp.Name)
	chambers.AssertExpectations(t)
}

func TestGetChamber_BelongsToDoctor(t *testing.T) {
	chamber := sundayChamber(uuid.New())
	uc, chambers, _ := newChamberFixture()
	chambers.On("FindByID", mock.Anything, chamber.ID).Return(&chamber, nil)

	_, err := uc.GetChamber(t.Context(), uuid.New(), chamber.ID)

	assert.ErrorIs(t, err, ErrChamberNotFound)
}

func TestDeleteChamber_ReferencedByAppointments(t *testing.T) {
	doctorID := uuid.New()
	chamber := sundayChamber(doctorID)
	uc, chambers, _ := newChamberFixture()
	chambers.On("FindByID", mock.Anything, chamber.ID).Return(&chamber, nil)
	chambers.On("Delete", mock.Anything, chamber.ID).
		Return(int64(0), &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_chamber"})

	err := uc.DeleteChamber(asPrincipal(entity.RoleDoctor, doctorID), doctorID, chamber.ID)

	assert.ErrorIs(t, err, ErrChamberInUse)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestListChambers_Public(t *testing.T) {
	doctorID := uuid.New()
	uc, chambers, doctors := newChamberFixture()
	doctors.On("FindByUserID", mock.Anything, doctorID).Return(availableDoctor(doctorID), nil)
	chambers.On("FindByDoctorID", mock.Anything, doctorID).Return([]entity.Chamber{sundayChamber(doctorID)}, nil)

	resp, err := uc.ListChambers(t.Context(), doctorID)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}
