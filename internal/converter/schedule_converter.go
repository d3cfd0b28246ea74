package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
)

func TimeSlotsToResponses(slots entity.TimeSlots) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = dto.TimeSlotResponse{
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			ChamberID:   s.ChamberID,
			IsAvailable: s.IsAvailable,
		}
	}
	return responses
}

func TimeSlotsFromRequest(slots []dto.TimeSlotRequest) entity.TimeSlots {
	result := make(entity.TimeSlots, len(slots))
	for i, s := range slots {
		result[i] = entity.TimeSlot{
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			ChamberID:   s.ChamberID,
			IsAvailable: s.IsAvailable,
		}
	}
	return result
}

func DayScheduleToResponse(schedule *entity.DaySchedule, stored, fallback bool) dto.DayScheduleResponse {
	return dto.DayScheduleResponse{
		DoctorID:  schedule.DoctorID,
		Date:      schedule.Date.Format(entity.DateLayout),
		Weekday:   schedule.Date.Weekday().String(),
		TimeSlots: TimeSlotsToResponses(schedule.TimeSlots),
		Stored:    stored,
		Fallback:  fallback,
	}
}
