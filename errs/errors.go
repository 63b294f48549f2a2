package errs

import (
	"fmt"
	"net/http"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/pkg/errors"
)

type HTTPStatusError struct {
	StatusCode  int
	Message     string
	OriginalErr error
}

func (e *HTTPStatusError) Error() string {
	if e.OriginalErr == nil {
		return fmt.Sprintf("(status %d) %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("(status %d) %s: %v", e.StatusCode, e.Message, e.OriginalErr)
}

func (e *HTTPStatusError) Unwrap() error {
	return e.OriginalErr
}

func NewHTTPStatusError(statusCode int, message string, originalErr error) *HTTPStatusError {
	return &HTTPStatusError{
		StatusCode:  statusCode,
		Message:     message,
		OriginalErr: originalErr,
	}
}

func IsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	if err == nil {
		return nil, false
	}
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	httpErr, ok := errors.Cause(err).(*HTTPStatusError)
	return httpErr, ok
}

// StatusOf maps an error to the HTTP status it should be reported with
func StatusOf(err error) int {
	if httpErr, ok := IsHTTPStatusError(err); ok {
		return httpErr.StatusCode
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidProcess), errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrNilQueryInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
