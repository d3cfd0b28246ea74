package handler

import (
	"net/http"
	"strconv"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"

	"github.com/google/uuid"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// CreateDoctor creates the doctor's user account and profile together
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// SearchDoctors
// @Summary Search doctors
// @Tags Doctors
// @Produce json
// @Param specialization query string false "Specialization (partial match)"
// @Param hospital_id query string false "Hospital ID"
// @Param name query string false "Doctor name (partial match)"
// @Param available query bool false "Only doctors accepting bookings"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	req := &dto.DoctorFilterRequest{
		Name:           r.URL.Query().Get("name"),
		Specialization: r.URL.Query().Get("specialization"),
	}

	if raw := queryParam(r, "hospital_id", "hospitalId"); raw != "" {
		hospitalID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
			return
		}
		req.HospitalID = &hospitalID
	}

	if raw := r.URL.Query().Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "available must be true or false", nil)
			return
		}
		req.Available = &available
	}

	var err error
	if req.Page, err = queryInt(r, "page", 1); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid page", nil)
		return
	}
	if req.Limit, err = queryInt(r, "limit", dto.DefaultPageLimit); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
		return
	}

	doctors, err := h.doctorUsecase.SearchDoctors(r.Context(), req)
	if err != nil {
		response.FromError(w, err, "Failed to get doctors")
		return
	}

	// SearchDoctors normalizes the page in place
	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      doctors.Total,
		TotalPages: dto.TotalPages(doctors.Total, req.Limit),
	})
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), doctorID); err != nil {
		response.FromError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.SetAvailabilityRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.SetAvailability(r.Context(), doctorID, *req.Available)
	if err != nil {
		response.FromError(w, err, "Failed to update availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", doctor)
}
