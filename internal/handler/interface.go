package handler

import (
	"net/http"
)

// RecordHandlerInterface defines the contract for record HTTP handlers.
type RecordHandlerInterface interface {
	ListHandler(w http.ResponseWriter, r *http.Request)
	GetHandler(w http.ResponseWriter, r *http.Request)
	CreateHandler(w http.ResponseWriter, r *http.Request)
	UpdateHandler(w http.ResponseWriter, r *http.Request)
	DeleteHandler(w http.ResponseWriter, r *http.Request)
}

// HealthHandlerInterface defines the contract for liveness handlers.
type HealthHandlerInterface interface {
	HealthHandler(w http.ResponseWriter, r *http.Request)
	WelcomeHandler(w http.ResponseWriter, r *http.Request)
}

// Ensure the handlers implement their interfaces at compile time
var (
	_ RecordHandlerInterface = (*EmployeeHandler)(nil)
	_ RecordHandlerInterface = (*SystemHandler)(nil)
	_ HealthHandlerInterface = (*HealthHandler)(nil)
)
