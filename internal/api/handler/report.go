package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/api/response"
	"github.com/metroconnect/metroconnect/internal/report"
)

// ReportHandler handles user reports.
type ReportHandler struct {
	reportService *report.Service
	log           zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *report.Service, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, log: log}
}

// CreateReport handles POST /v1/reports - report another user.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input models.ReportCreateRequest
	if !decodeBody(w, r, &input) {
		return
	}

	created, err := h.reportService.File(r.Context(), userID, &input)
	if err != nil {
		var validationErr *report.ValidationError
		switch {
		case errors.As(err, &validationErr):
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
		case errors.Is(err, report.ErrDuplicateReport):
			response.Conflict(w, r, "you have already reported this user")
		default:
			internalError(w, r, h.log, err, "failed to file report")
		}
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/reports/%s", created.ID), created)
}
