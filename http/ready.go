package http

import (
	"net/http"
	"time"

	kithttp "github.com/influxdata/fluxbridge/kit/transport/http"
)

type readyResponse struct {
	Status  string    `json:"status"`
	Started time.Time `json:"started"`
	Up      string    `json:"up"`
}

// ReadyHandler is a default readiness handler. The default behavior is always ready.
func ReadyHandler() http.Handler {
	started := time.Now()
	api := kithttp.NewAPI()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.Respond(w, r, http.StatusOK, readyResponse{
			Status:  "ready",
			Started: started.UTC(),
			Up:      time.Since(started).String(),
		})
	})
}
