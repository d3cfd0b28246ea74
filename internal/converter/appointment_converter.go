package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:               a.ID,
		BookingCode:      a.BookingCode,
		DoctorID:         a.DoctorID,
		ChamberID:        a.ChamberID,
		PatientID:        a.PatientID,
		PatientName:      a.PatientName,
		PatientPhone:     a.PatientPhone,
		PatientEmail:     a.PatientEmail,
		PatientAge:       a.PatientAge,
		PatientGender:    a.PatientGender,
		Problem:          a.Problem,
		ConsultationType: string(a.ConsultationType),
		AppointmentType:  string(a.AppointmentType),
		Date:             a.Date.Format(entity.DateLayout),
		TimeSlot:         a.TimeSlot,
		Status:           string(a.Status),
		Fee:              a.Fee,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}

	if a.Doctor != nil {
		resp.DoctorName = a.Doctor.User.FullName
	}
	if a.Chamber != nil {
		resp.ChamberName = a.Chamber.Name
	}

	return resp
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
