package response

import (
	"errors"
	"net/http"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Authorization denials carry their own reason
	var forbidden *authz.ForbiddenError
	if errors.As(err, &forbidden) {
		Forbidden(w, forbidden.Reason)
		return
	}

	switch {
	// Auth domain errors. Invalid and expired tokens produce the same
	// message so a caller cannot probe token state.
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenRequired):
		Unauthorized(w, "authentication token required")
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "token invalid or expired")
	case errors.Is(err, auth.ErrUserDisabled):
		Unauthorized(w, "user not found or disabled")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrDuplicateEmail):
		BadRequest(w, "DUPLICATE_EMAIL", "Email is already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "VALIDATION_ERROR", "role must be one of sales, manager, admin")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrDuplicateReport):
		BadRequest(w, "DUPLICATE_REPORT", "A report already exists for this date")
	case errors.Is(err, report.ErrCommentNotFound):
		NotFound(w, "Comment not found")

	// Customer domain errors
	case errors.Is(err, customer.ErrCustomerNotFound):
		NotFound(w, "Customer not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
