package apierr

import (
	"errors"
	"fmt"
	"net/http"

	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var classes = []struct {
	target error
	status int
	code   string
}{
	{perrors.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{perrors.ErrAuthenticationFailure, http.StatusUnauthorized, "authentication_failed"},
	{perrors.ErrNoSession, http.StatusUnauthorized, "no_session"},
	{perrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{perrors.ErrMuted, http.StatusForbidden, "muted"},
	{perrors.ErrEmptyMessage, http.StatusBadRequest, "empty_message"},
	{perrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{perrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{perrors.ErrNotConfigured, http.StatusServiceUnavailable, "not_configured"},
	{perrors.ErrGenerationFailure, http.StatusBadGateway, "generation_failed"},
}

// Classify maps a domain error onto an HTTP status and a stable code.
// Unknown errors become 500/internal_error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return New(c.status, c.code, err)
		}
	}
	return New(http.StatusInternalServerError, "internal_error", err)
}
