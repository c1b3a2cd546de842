package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-disguise/internal/services"
)

// StatusError pins an error to an HTTP status and machine-readable code.
type StatusError struct {
	Status int
	Code   string
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *StatusError) Unwrap() error { return e.Err }

func statusErr(status int, code string, err error) *StatusError {
	return &StatusError{Status: status, Code: code, Err: err}
}

// FromServiceError maps a service error onto an HTTP status and code.
func FromServiceError(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return statusErr(http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrPolicyViolation):
		return statusErr(http.StatusForbidden, "policy_violation", err)
	case errors.Is(err, services.ErrInvalidArgument):
		return statusErr(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, services.ErrOutsideCourse):
		return statusErr(http.StatusConflict, "outside_course", err)
	case errors.Is(err, services.ErrInvalidState):
		return statusErr(http.StatusConflict, "invalid_state", err)
	case errors.Is(err, services.ErrNotImplemented):
		return statusErr(http.StatusNotImplemented, "not_implemented", err)
	case errors.Is(err, services.ErrCreationFailed):
		return statusErr(http.StatusInternalServerError, "creation_failed", err)
	default:
		return statusErr(http.StatusInternalServerError, "internal", err)
	}
}

func RespondServiceError(c *gin.Context, err error) {
	se := FromServiceError(err)
	RespondError(c, se.Status, se.Code, se.Err)
}
