package http

import (
	"net/http"

	"github.com/partypulse/partygen/internal/api/respond"
)

// HandleHealth reports liveness. The service has no hard dependencies to
// probe at rest; upstream failures surface per request.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "partygen-service",
	})
}
