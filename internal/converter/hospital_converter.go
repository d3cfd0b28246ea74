package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
)

func HospitalToResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		City:        h.City,
		Phone:       h.Phone,
		Email:       h.Email,
		Description: h.Description,
		IsActive:    h.IsActive == nil || *h.IsActive,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i])
	}
	return responses
}
