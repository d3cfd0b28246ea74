package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO.
// Hospital and chambers are included when preloaded.
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	resp := &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		Phone:           profile.User.Phone,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Qualification:   profile.Qualification,
		Biography:       profile.Biography,
		ExperienceYears: profile.ExperienceYears,
		Available:       profile.IsAvailable(),
		IsActive:        profile.User.Active(),
		Hospital:        HospitalToResponse(profile.Hospital),
	}

	if len(profile.Chambers) > 0 {
		resp.Chambers = ChambersToResponses(profile.Chambers)
	}

	return resp
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities,
// attaching ratings when a summary exists for the doctor.
func DoctorProfilesToResponses(profiles []entity.DoctorProfile, ratings map[uuid.UUID]entity.RatingSummary) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
		if summary, ok := ratings[profiles[i].UserID]; ok {
			responses[i].Rating = RatingToResponse(summary)
		}
	}
	return responses
}

func RatingToResponse(summary entity.RatingSummary) *dto.RatingResponse {
	return &dto.RatingResponse{
		Average:     summary.Average,
		ReviewCount: summary.ReviewCount,
	}
}
