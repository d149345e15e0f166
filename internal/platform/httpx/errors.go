package httpx

import (
	"errors"
	"net/http"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Store failures fall through to a bare 500 so nothing about the
// backing query leaks to the client.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusBadRequest, "Invalid Credentials", err.Error())
	case errors.Is(err, shared.ErrEmailTaken):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
