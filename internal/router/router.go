package router

import (
	"net/http"

	"asset-registry-api/internal/config"
	"asset-registry-api/internal/handler"
	"asset-registry-api/internal/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers are the endpoint groups served by the API.
type Handlers struct {
	Employees handler.RecordHandlerInterface
	Systems   handler.RecordHandlerInterface
	Health    handler.HealthHandlerInterface
}

// NewRouter creates a new router and sets up the routes with security middleware.
// CORS wraps the router so preflight requests are answered for every path.
func NewRouter(h Handlers, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security, logger)
	loggingMW := middleware.NewLoggingMiddleware(logger)

	// Apply global middleware in order
	r.Use(loggingMW.RequestID)
	r.Use(securityMW.TrustedProxy)
	r.Use(loggingMW.LogRequests)
	r.Use(middleware.Recover(logger))
	r.Use(securityMW.SecurityHeaders)
	r.Use(securityMW.RateLimit)
	r.Use(securityMW.RequestTimeout)

	api := r.PathPrefix("/api").Subrouter()

	registerRecordRoutes(api, "/employee", h.Employees)
	registerRecordRoutes(api, "/systems", h.Systems)

	r.HandleFunc("/health", h.Health.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/", h.Health.WelcomeHandler).Methods(http.MethodGet)

	return securityMW.CORS(r)
}

func registerRecordRoutes(r *mux.Router, path string, h handler.RecordHandlerInterface) {
	r.HandleFunc(path, h.ListHandler).Methods(http.MethodGet)
	r.HandleFunc(path, h.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc(path+"/{id}", h.GetHandler).Methods(http.MethodGet)
	r.HandleFunc(path+"/{id}", h.UpdateHandler).Methods(http.MethodPut)
	r.HandleFunc(path+"/{id}", h.DeleteHandler).Methods(http.MethodDelete)
}
