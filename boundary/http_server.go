package boundary

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
	kithttp "github.com/influxdata/fluxbridge/kit/transport/http"
	"github.com/influxdata/fluxbridge/logger"
	"go.uber.org/zap"
)

// Routes served by the handler, relative to its mount point.
const (
	RouteAST     = "/ast"
	RouteFormat  = "/format"
	RouteVarType = "/vartype"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 10 << 20

type handler struct {
	log *zap.Logger
	svc fluxbridge.BoundaryService
	api *kithttp.API
}

// NewHTTPHandler creates a new handler serving svc over HTTP.
func NewHTTPHandler(log *zap.Logger, svc fluxbridge.BoundaryService) http.Handler {
	h := &handler{
		log: log,
		svc: svc,
		api: kithttp.NewAPI(kithttp.WithLog(log)),
	}

	r := chi.NewRouter()
	r.Post(RouteAST, h.handlePostAST)
	r.Post(RouteFormat, h.handlePostFormat)
	r.Post(RouteVarType, h.handlePostVarType)
	return r
}

type postASTRequest struct {
	Query    string `json:"query"`
	FileName string `json:"fileName"`
}

type postASTResponse struct {
	AST    json.RawMessage `json:"ast"`
	Errors []string        `json:"errors"`
}

// handlePostAST is the HTTP handler for the POST /api/v2/flux/ast route.
func (h *handler) handlePostAST(w http.ResponseWriter, r *http.Request) {
	var req postASTRequest
	if err := h.api.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	encoded, err := h.svc.Parse(fluxbridge.SourceUnit{Source: req.Query, FileName: req.FileName})
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	diags, err := Diagnostics(encoded)
	if err != nil {
		h.api.Err(w, r, errors.Wrap(err, errors.EInternal, fluxbridge.OpParse))
		return
	}
	if len(diags) > 0 {
		logger.FromContext(r.Context()).Debug("source has syntax errors", zap.Int("errors", len(diags)))
	}

	h.api.Respond(w, r, http.StatusOK, postASTResponse{
		AST:    encoded,
		Errors: diags,
	})
}

type postFormatResponse struct {
	Formatted string `json:"formatted"`
}

// handlePostFormat is the HTTP handler for the POST /api/v2/flux/format route.
// The body is the encoded tree itself.
func (h *handler) handlePostFormat(w http.ResponseWriter, r *http.Request) {
	encoded, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.api.Err(w, r, &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to read request body",
			Err:  err,
		})
		return
	}

	formatted, err := h.svc.Format(encoded)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, postFormatResponse{Formatted: formatted})
}

type postVarTypeRequest struct {
	Query    string `json:"query"`
	FileName string `json:"fileName"`
	Name     string `json:"name"`
}

func (r postVarTypeRequest) OK() error {
	if r.Name == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "name is required",
		}
	}
	return nil
}

type postVarTypeResponse struct {
	Type json.RawMessage `json:"type"`
}

// handlePostVarType is the HTTP handler for the POST /api/v2/flux/vartype route.
func (h *handler) handlePostVarType(w http.ResponseWriter, r *http.Request) {
	var req postVarTypeRequest
	if err := h.api.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	encoded, err := h.svc.ResolveVariableType(fluxbridge.SourceUnit{Source: req.Query, FileName: req.FileName}, req.Name)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, postVarTypeResponse{Type: encoded})
}
