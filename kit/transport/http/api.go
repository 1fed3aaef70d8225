package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"go.uber.org/zap"
)

type oker interface {
	OK() error
}

// APIOptFn is a functional option for the API.
type APIOptFn func(*API)

// WithLog sets the logger of API failures.
func WithLog(logger *zap.Logger) APIOptFn {
	return func(api *API) {
		api.logger = logger
	}
}

// WithPrettyJSON indents response bodies.
func WithPrettyJSON(b bool) APIOptFn {
	return func(api *API) {
		api.prettyJSON = b
	}
}

// API provides a consolidated means for handling API interface concerns.
// Concerns such as decoding/encoding request and response bodies as well
// as adding headers for content type and error codes.
type API struct {
	logger     *zap.Logger
	prettyJSON bool
	errHandler ErrorHandler
}

// NewAPI creates a new API type.
func NewAPI(opts ...APIOptFn) *API {
	api := API{
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(&api)
	}
	return &api
}

// DecodeJSON decodes the request body into v, then validates it when v has
// an OK method. Decode failures are EInvalid.
func (a *API) DecodeJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode request body",
			Err:  err,
		}
	}

	if vv, ok := v.(oker); ok {
		return vv.OK()
	}
	return nil
}

// Respond writes to the response writer, handling all errors in writing.
func (a *API) Respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	if a.prettyJSON {
		enc.SetIndent("", "\t")
	}

	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		a.logger.Error("failed to encode response body", zap.Error(err))
	}
}

// Err is used for writing an error to the response.
func (a *API) Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if StatusCode(err) >= http.StatusInternalServerError {
		a.logger.Error("api error encountered", zap.Error(err))
	} else {
		a.logger.Debug("api error encountered", zap.Error(err))
	}
	a.errHandler.HandleHTTPError(r.Context(), err, w)
}
