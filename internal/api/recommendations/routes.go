package recommendations

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the recommendation endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *RecommendationHandler) {
	protected.HandleFunc("/recommendations", api.Logged("Recs", h.Get)).Methods(http.MethodGet)
	protected.HandleFunc("/recommendations/saved", api.Logged("Recs", h.Save)).Methods(http.MethodPost)
	protected.HandleFunc("/recommendations/saved", api.Logged("Recs", h.ListSaved)).Methods(http.MethodGet)
	protected.HandleFunc("/recommendations/saved/{id}", api.Logged("Recs", h.DeleteSaved)).Methods(http.MethodDelete)
}
