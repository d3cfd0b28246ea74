package converter

import (
	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/domain/entity"
)

func ChamberToResponse(c *entity.Chamber) *dto.ChamberResponse {
	if c == nil {
		return nil
	}

	schedule := make([]dto.ScheduleEntryResponse, len(c.Schedule))
	for i, entry := range c.Schedule {
		schedule[i] = dto.ScheduleEntryResponse{
			Day:       entry.Day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}
	}

	return &dto.ChamberResponse{
		ID:              c.ID,
		DoctorID:        c.DoctorID,
		Name:            c.Name,
		Address:         c.Address,
		Contact:         c.Contact,
		Schedule:        schedule,
		SlotDuration:    c.SlotDuration,
		ConsultationFee: c.ConsultationFee,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ChambersToResponses(chambers []entity.Chamber) []dto.ChamberResponse {
	responses := make([]dto.ChamberResponse, len(chambers))
	for i := range chambers {
		responses[i] = *ChamberToResponse(&chambers[i])
	}
	return responses
}

// ScheduleFromRequest maps request entries onto the JSONB schedule
func ScheduleFromRequest(entries []dto.ScheduleEntryRequest) entity.WeeklySchedule {
	schedule := make(entity.WeeklySchedule, len(entries))
	for i, e := range entries {
		schedule[i] = entity.ScheduleEntry{
			Day:       e.Day,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		}
	}
	return schedule
}
