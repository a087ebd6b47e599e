package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/middleware"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/response"
)

type CustomerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type customerHandlerImpl struct {
	customerService customer.CustomerService
}

func NewCustomerHandler(customerService customer.CustomerService) CustomerHandler {
	return &customerHandlerImpl{
		customerService: customerService,
	}
}

// List handles GET /customers
func (h *customerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	customers, err := h.customerService.List(r.Context(), keyword)
	if err != nil {
		slog.Error("List customers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, customers)
}

// Create handles POST /customers
func (h *customerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	var createReq customer.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create customer decode error", "error", err)
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.customerService.Create(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create customer service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created successfully", created)
}

// Update handles PUT /customers/{id}
func (h *customerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid customer id")
		return
	}

	var updateReq customer.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update customer decode error", "error", err)
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.customerService.Update(r.Context(), actor, id, updateReq)
	if err != nil {
		slog.Error("Update customer service error", "error", err, "customer_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer updated successfully", updated)
}

// Delete handles DELETE /customers/{id}
func (h *customerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid customer id")
		return
	}

	if err := h.customerService.Delete(r.Context(), actor, id); err != nil {
		slog.Error("Delete customer service error", "error", err, "customer_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}
