package handler

import (
	"net/http"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHospitalRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.CreateHospital(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	hospital, err := h.hospitalUsecase.GetHospital(r.Context(), hospitalID)
	if err != nil {
		response.FromError(w, err, "Failed to get hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

// GetAllHospitals supports optional ?name= and ?city= filters
func (h *HospitalHandler) GetAllHospitals(w http.ResponseWriter, r *http.Request) {
	filter := &dto.HospitalFilterRequest{
		Name: r.URL.Query().Get("name"),
		City: r.URL.Query().Get("city"),
	}

	hospitals, err := h.hospitalUsecase.GetAllHospitals(r.Context(), filter)
	if err != nil {
		response.FromError(w, err, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	var req dto.UpdateHospitalRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.UpdateHospital(r.Context(), hospitalID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital updated successfully", hospital)
}

func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	if err := h.hospitalUsecase.DeleteHospital(r.Context(), hospitalID); err != nil {
		response.FromError(w, err, "Failed to delete hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital deleted successfully", nil)
}
