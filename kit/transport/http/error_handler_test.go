package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/influxdata/fluxbridge/kit/platform/errors"
	kithttp "github.com/influxdata/fluxbridge/kit/transport/http"
)

func TestEncodeError(t *testing.T) {
	w := httptest.NewRecorder()

	kithttp.ErrorHandler(0).HandleHTTPError(context.TODO(), nil, w)

	if w.Code != 200 {
		t.Errorf("expected status code 200, got: %d", w.Code)
	}
}

func TestEncodeErrorWithError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
		op     string
	}{
		{
			err: &errors.Error{
				Code: errors.EInternal,
				Msg:  "an error occurred",
				Err:  fmt.Errorf("there's an error here, be aware"),
			},
			status: http.StatusInternalServerError,
			code:   errors.EInternal,
			msg:    "an error occurred: there's an error here, be aware",
		},
		{
			err:    errors.Errorf(errors.EDecode, "wire/DecodeFile", "unknown schema %q", "x"),
			status: http.StatusBadRequest,
			code:   errors.EDecode,
			msg:    `unknown schema "x"`,
			op:     "wire/DecodeFile",
		},
		{
			err:    &errors.Error{Code: errors.EPrint, Msg: "unable to print syntax tree"},
			status: http.StatusUnprocessableEntity,
			code:   errors.EPrint,
			msg:    "unable to print syntax tree",
		},
		{
			err:    &errors.Error{Code: errors.EEncode, Msg: "bad tree"},
			status: http.StatusInternalServerError,
			code:   errors.EEncode,
			msg:    "bad tree",
		},
		{
			err:    fmt.Errorf("plain"),
			status: http.StatusInternalServerError,
			code:   errors.EInternal,
			msg:    "An internal error has occurred",
		},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			kithttp.ErrorHandler(0).HandleHTTPError(context.TODO(), tt.err, w)

			if w.Code != tt.status {
				t.Errorf("expected status code %d, got: %d", tt.status, w.Code)
			}
			if got := w.Header().Get(kithttp.PlatformErrorCodeHeader); got != tt.code {
				t.Errorf("expected X-Platform-Error-Code: %s, got: %s", tt.code, got)
			}

			var body kithttp.ErrBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if want, got := tt.code, body.Code; want != got {
				t.Errorf("unexpected code -want/+got:\n\t- %q\n\t+ %q", want, got)
			}
			if want, got := tt.msg, body.Message; want != got {
				t.Errorf("unexpected message -want/+got:\n\t- %q\n\t+ %q", want, got)
			}
			if want, got := tt.op, body.Op; want != got {
				t.Errorf("unexpected op -want/+got:\n\t- %q\n\t+ %q", want, got)
			}
		})
	}
}
