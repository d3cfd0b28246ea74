package handler

import (
	"net/http"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	review, err := h.reviewUsecase.CreateReview(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to create review")
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}

func (h *ReviewHandler) GetDoctorReviews(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	reviews, err := h.reviewUsecase.GetDoctorReviews(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}
