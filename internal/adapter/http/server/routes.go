package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/fitness-connect/docs"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *Handlers) {
	// System Health
	mux.HandleFunc("GET /health", routes.Health.HealthCheck)

	setupSwaggerRoutes(mux)
	setupMetricsRoute(mux)

	setupCatalogRoutes(mux, routes)
	setupSessionRoutes(mux, routes)
}

func setupCatalogRoutes(mux *http.ServeMux, routes *Handlers) {
	mux.HandleFunc("GET /trainers", routes.Catalog.ListTrainers)   // Trainer pool
	mux.HandleFunc("GET /exercises", routes.Catalog.ListExercises) // Exercises and duration options
}

func setupSessionRoutes(mux *http.ServeMux, routes *Handlers) {
	b := routes.Booking

	mux.HandleFunc("POST /sessions", b.CreateSession)
	mux.HandleFunc("GET /sessions/{session_id}", b.GetSession)
	mux.HandleFunc("DELETE /sessions/{session_id}", b.DeleteSession)

	mux.HandleFunc("POST /sessions/{session_id}/request", b.RequestSession)   // idle -> selecting
	mux.HandleFunc("PUT /sessions/{session_id}/selection", b.UpdateSelection) // exercise and duration
	mux.HandleFunc("POST /sessions/{session_id}/confirm", b.ConfirmSearch)    // selecting -> searching
	mux.HandleFunc("POST /sessions/{session_id}/accept", b.Accept)            // found -> arriving
	mux.HandleFunc("POST /sessions/{session_id}/decline", b.Decline)          // found -> idle
	mux.HandleFunc("POST /sessions/{session_id}/cancel", b.Cancel)            // any -> idle

	mux.HandleFunc("POST /sessions/{session_id}/chat/toggle", b.ToggleChat)
	mux.HandleFunc("PUT /sessions/{session_id}/chat/draft", b.UpdateDraft)
	mux.HandleFunc("POST /sessions/{session_id}/chat/messages", b.SendMessage)

	mux.HandleFunc("GET /ws/sessions/{session_id}", routes.BookingWs.Subscribe) // WebSocket stream of session events
}

// setupSwaggerRoutes configures Swagger UI endpoints
func setupSwaggerRoutes(mux *http.ServeMux) {
	swaggerURL := httpSwagger.InstanceName(docs.InstanceName)
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
