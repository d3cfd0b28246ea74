package handler

import (
	"net/http"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"
)

// ChamberHandler serves /doctors/{id}/chambers. Ownership is checked by the usecase.
type ChamberHandler struct {
	chamberUsecase usecase.ChamberUsecase
	validator      *validator.CustomValidator
}

func NewChamberHandler(chamberUsecase usecase.ChamberUsecase, validator *validator.CustomValidator) *ChamberHandler {
	return &ChamberHandler{
		chamberUsecase: chamberUsecase,
		validator:      validator,
	}
}

func (h *ChamberHandler) ListChambers(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	chambers, err := h.chamberUsecase.ListChambers(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get chambers")
		return
	}

	response.Success(w, http.StatusOK, "Chambers retrieved successfully", chambers)
}

func (h *ChamberHandler) GetChamber(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}
	chamberID, ok := pathUUID(w, r, "chamberId", "chamber")
	if !ok {
		return
	}

	chamber, err := h.chamberUsecase.GetChamber(r.Context(), doctorID, chamberID)
	if err != nil {
		response.FromError(w, err, "Failed to get chamber")
		return
	}

	response.Success(w, http.StatusOK, "Chamber retrieved successfully", chamber)
}

func (h *ChamberHandler) CreateChamber(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.ChamberRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	chamber, err := h.chamberUsecase.CreateChamber(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create chamber")
		return
	}

	response.Success(w, http.StatusCreated, "Chamber created successfully", chamber)
}

func (h *ChamberHandler) UpdateChamber(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}
	chamberID, ok := pathUUID(w, r, "chamberId", "chamber")
	if !ok {
		return
	}

	var req dto.ChamberRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	chamber, err := h.chamberUsecase.UpdateChamber(r.Context(), doctorID, chamberID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update chamber")
		return
	}

	response.Success(w, http.StatusOK, "Chamber updated successfully", chamber)
}

func (h *ChamberHandler) DeleteChamber(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}
	chamberID, ok := pathUUID(w, r, "chamberId", "chamber")
	if !ok {
		return
	}

	if err := h.chamberUsecase.DeleteChamber(r.Context(), doctorID, chamberID); err != nil {
		response.FromError(w, err, "Failed to delete chamber")
		return
	}

	response.Success(w, http.StatusOK, "Chamber deleted successfully", nil)
}
