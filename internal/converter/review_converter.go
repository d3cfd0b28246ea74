package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
)

func ReviewToResponse(r *entity.Review) *dto.ReviewResponse {
	if r == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:          r.ID,
		DoctorID:    r.DoctorID,
		PatientID:   r.PatientID,
		PatientName: r.Patient.FullName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}
