package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/middleware"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	DeleteComment(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// List handles GET /reports
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	var q report.ListQuery
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.reportService.List(r.Context(), actor, q)
	if err != nil {
		slog.Error("List reports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /reports
func (h *reportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	var createReq report.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create report decode error", "error", err)
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.reportService.Create(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report created successfully", created)
}

// Get handles GET /reports/{id}
func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid report id")
		return
	}

	detail, err := h.reportService.Get(r.Context(), actor, id)
	if err != nil {
		slog.Error("Get report service error", "error", err, "report_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// AddComment handles POST /reports/{id}/comments
func (h *reportHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	reportID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || reportID <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid report id")
		return
	}

	var commentReq report.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		slog.Error("Add comment decode error", "error", err)
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	if err := commentReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	comment, err := h.reportService.AddComment(r.Context(), actor, reportID, commentReq)
	if err != nil {
		slog.Error("Add comment service error", "error", err, "report_id", reportID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added successfully", comment)
}

// DeleteComment handles DELETE /reports/{id}/comments/{commentId}
func (h *reportHandlerImpl) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	reportID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || reportID <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid report id")
		return
	}
	commentID, err := strconv.Atoi(chi.URLParam(r, "commentId"))
	if err != nil || commentID <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid comment id")
		return
	}

	if err := h.reportService.DeleteComment(r.Context(), actor, reportID, commentID); err != nil {
		slog.Error("Delete comment service error", "error", err, "report_id", reportID, "comment_id", commentID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comment deleted successfully", nil)
}
