package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/influxdata/fluxbridge/kit/platform/errors"
)

// PlatformErrorCodeHeader shows the error code of a boundary error.
const PlatformErrorCodeHeader = "X-Platform-Error-Code"

// ErrorHandler is the error handler in http package.
type ErrorHandler int

// ErrBody is the JSON body of an error response.
type ErrBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Op      string `json:"op,omitempty"`
}

// HandleHTTPError encodes err with the appropriate status code and format,
// and sets the X-Platform-Error-Code header on the response.
func (h ErrorHandler) HandleHTTPError(_ context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		return
	}

	code := errors.ErrorCode(err)
	w.Header().Set(PlatformErrorCodeHeader, code)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(StatusCode(err))

	body := ErrBody{Code: code}
	var e *errors.Error
	if stderrors.As(err, &e) {
		body.Message = e.Error()
		body.Op = errors.ErrorOp(err)
	} else {
		body.Message = "An internal error has occurred"
	}
	b, _ := json.Marshal(body)
	_, _ = w.Write(b)
}

// StatusCode returns the HTTP status reported for err.
func StatusCode(err error) int {
	if httpCode, ok := statusCodeBoundaryError[errors.ErrorCode(err)]; ok {
		return httpCode
	}
	return http.StatusInternalServerError
}

var statusCodeBoundaryError = map[string]int{
	errors.EInternal: http.StatusInternalServerError,
	errors.EInvalid:  http.StatusBadRequest,
	errors.EDecode:   http.StatusBadRequest,
	errors.EPrint:    http.StatusUnprocessableEntity,
	errors.EEncode:   http.StatusInternalServerError,
}
