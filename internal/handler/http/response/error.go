package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

// classStatus is checked in order; the first class the error wraps picks the status.
var classStatus = []struct {
	class  error
	status int
}{
	{apperror.ErrInvalidRequest, http.StatusBadRequest},
	{apperror.ErrUnauthenticated, http.StatusUnauthorized},
	{apperror.ErrForbidden, http.StatusForbidden},
	{apperror.ErrNotFound, http.StatusNotFound},
}

// HandleError maps domain errors to HTTP responses by their apperror class.
// Anything unclassified is logged and answered with a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Fail(w, http.StatusUnprocessableEntity, "Validation failed", validationErrs.ToMap())
		return
	}

	for _, c := range classStatus {
		if errors.Is(err, c.class) {
			Fail(w, c.status, err.Error(), nil)
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
}
