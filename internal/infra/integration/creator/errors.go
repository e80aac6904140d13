package creator

import (
	"errors"
	"fmt"
)

// APIError is any non-success outcome of a platform call: a non-3000 code,
// an HTTP failure status or an unreadable body.
type APIError struct {
	Operation  string
	Code       int
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("creator %s failed (code %d, http %d): %s", e.Operation, e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("creator %s failed (code %d, http %d)", e.Operation, e.Code, e.HTTPStatus)
}

// IsNoRecords reports whether err is a query that matched nothing.
func IsNoRecords(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNoRecords
}

// CodeOf returns the platform code carried by err, or 0.
func CodeOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
