package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
)

// HandleError maps domain and storage errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Storage constraint messages go out as the server wrote them.
	var constraintErr *database.ConstraintError
	if errors.As(err, &constraintErr) {
		var details map[string]string
		if constraintErr.Constraint != "" {
			details = map[string]string{"constraint": constraintErr.Constraint}
		}
		Conflict(w, constraintErr.Message, details)
		return
	}

	switch {
	case errors.Is(err, validator.ErrEmptyPayload):
		BadRequest(w, "Request payload is required", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")

	// Storage errors
	case errors.Is(err, database.ErrUnavailable):
		slog.Error("Storage unavailable", "error", err)
		ServiceUnavailable(w, "Storage is unavailable, try again later")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
