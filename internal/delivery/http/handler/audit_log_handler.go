package handler

import (
	"net/http"
	"strconv"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		response.FromError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	var page dto.PageRequest
	var err error
	if page.Page, err = queryInt(r, "page", 1); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid page", nil)
		return
	}
	if page.Limit, err = queryInt(r, "limit", dto.DefaultPageLimit); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
		return
	}
	page.Normalize()

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), page)
	if err != nil {
		response.FromError(w, err, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs, &response.Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      auditLogs.Total,
		TotalPages: dto.TotalPages(auditLogs.Total, page.Limit),
	})
}
