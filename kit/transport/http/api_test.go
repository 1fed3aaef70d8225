package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/influxdata/fluxbridge/kit/platform/errors"
	kithttp "github.com/influxdata/fluxbridge/kit/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	Name string `json:"name"`
}

func (n named) OK() error {
	if n.Name == "" {
		return &errors.Error{Code: errors.EInvalid, Msg: "name is required"}
	}
	return nil
}

func TestAPI_DecodeJSON(t *testing.T) {
	api := kithttp.NewAPI()

	var v named
	require.NoError(t, api.DecodeJSON(strings.NewReader(`{"name":"x"}`), &v))
	assert.Equal(t, "x", v.Name)

	err := api.DecodeJSON(strings.NewReader(`{"name":""}`), &v)
	assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))

	err = api.DecodeJSON(strings.NewReader(`{`), &v)
	assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestAPI_Respond(t *testing.T) {
	api := kithttp.NewAPI(kithttp.WithPrettyJSON(true))

	w := httptest.NewRecorder()
	api.Respond(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, named{Name: "x"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "{\n\t\"name\": \"x\"\n}\n", w.Body.String())

	w = httptest.NewRecorder()
	api.Respond(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
