package usecase

import (
	"testing"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	req := &dto.CreateReviewRequest{Rating: 5, Comment: "Listened carefully"}

	tests := []struct {
		name      string
		role      entity.RoleName
		completed bool
		createErr error
		wantErr   error
	}{
		{"after a completed visit", entity.RoleUser, true, nil, nil},
		{"without a completed visit", entity.RoleUser, false, nil, ErrNoCompletedVisit},
		{"second review", entity.RoleUser, true, &pgconn.PgError{Code: "23505", ConstraintName: "uq_reviews_doctor_patient"}, ErrAlreadyReviewed},
		{"doctor cannot review", entity.RoleDoctor, true, nil, ErrReviewerNotPatient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			doctors := new(MockDoctorProfileRepository)
			appointments := new(MockAppointmentRepository)
			uc := NewReviewUsecase(newTestLogger(), reviews, doctors, appointments, &recordingAuditService{})

			doctors.On("FindByUserID", mock.Anything, doctorID).Return(availableDoctor(doctorID), nil)
			appointments.On("HasCompleted", mock.Anything, doctorID, patientID).Return(tt.completed, nil)
			reviews.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).Return(tt.createErr)

			resp, err := uc.CreateReview(asPrincipal(tt.role, patientID), doctorID, req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5, resp.Rating)
			assert.Equal(t, patientID, resp.PatientID)
		})
	}
}
