package handler

import (
	"net/http"
	"strconv"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// GetSchedules returns ?days= days starting at ?start=. Both are optional.
func (h *ScheduleHandler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	numDays, err := queryInt(r, "days", 0)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "days must be a number", nil)
		return
	}

	schedules, err := h.scheduleUsecase.GetSchedules(r.Context(), doctorID, queryParam(r, "start", "start_date", "startDate"), numDays)
	if err != nil {
		response.FromError(w, err, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// GenerateSchedule previews the chamber-derived schedule without saving it
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.GenerateScheduleRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	schedules, err := h.scheduleUsecase.GenerateDefaultSchedule(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to generate schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule generated successfully", schedules)
}

func (h *ScheduleHandler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.FindByDoctorAndDate(r.Context(), doctorID, mux.Vars(r)["date"])
	if err != nil {
		response.FromError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// SaveDaySchedule replaces every slot of the day
func (h *ScheduleHandler) SaveDaySchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.SaveDayScheduleRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	schedule, err := h.scheduleUsecase.SaveDaySchedule(r.Context(), doctorID, mux.Vars(r)["date"], &req)
	if err != nil {
		response.FromError(w, err, "Failed to save schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule saved successfully", schedule)
}

func (h *ScheduleHandler) SetSlotAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	vars := mux.Vars(r)
	slotIndex, err := strconv.Atoi(vars["index"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot index", nil)
		return
	}

	var req dto.SlotAvailabilityRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	schedule, err := h.scheduleUsecase.SetSlotAvailability(r.Context(), doctorID, vars["date"], slotIndex, *req.Available)
	if err != nil {
		response.FromError(w, err, "Failed to update slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", schedule)
}

// GetAvailableSlots
// @Summary Bookable slots of a doctor on a date
// @Tags Doctors
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param chamber_id query string false "Chamber ID, required when the doctor has several"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/available-slots [get]
func (h *ScheduleHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.ValidationError(w, map[string]string{"date": "date is required"})
		return
	}

	var chamberID *uuid.UUID
	if raw := queryParam(r, "chamber_id", "chamberId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid chamber ID", nil)
			return
		}
		chamberID = &id
	}

	slots, err := h.scheduleUsecase.GetAvailableSlots(r.Context(), doctorID, date, chamberID)
	if err != nil {
		response.FromError(w, err, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
