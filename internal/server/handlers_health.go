package server

import (
	"net/http"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

// handleHealth returns a simple health check response.
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: *constants.GetVersion(),
	})
}
