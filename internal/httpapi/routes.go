package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the engine's two request handlers plus health and
// metrics endpoints behind the standard recovery/logging/CORS middleware
// chain.
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	router.Use(recoveryMiddleware(deps.Logger))
	router.Use(loggingMiddleware(deps.Logger))
	router.Use(corsMiddleware)

	router.HandleFunc("/analyze", AnalyzeHandler(deps)).Methods(http.MethodGet)
	router.HandleFunc("/optimize", OptimizeHandler(deps)).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
