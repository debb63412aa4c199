package handler

import (
	"asset-registry-api/internal/model"
	"asset-registry-api/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Constants for timeouts and request limits
const (
	DefaultTimeout      = 10 * time.Second
	LongRunningTimeout  = 15 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// RecordService is the service contract the record handlers depend on.
type RecordService[T any] interface {
	Entity() service.Entity
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, record T) (*T, error)
	Replace(ctx context.Context, id uuid.UUID, record T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InvalidPayload(op string, err error) error
}

// RecordHandler serves the REST endpoints of one record type.
type RecordHandler[T any] struct {
	Service      RecordService[T]
	Logger       *zap.Logger
	MaxBodyBytes int64

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewRecordHandler creates a RecordHandler with its helpers
func NewRecordHandler[T any](svc RecordService[T], logger *zap.Logger) *RecordHandler[T] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RecordHandler[T]{
		Service:        svc,
		Logger:         logger,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// EmployeeHandler serves /api/employee.
type EmployeeHandler = RecordHandler[model.Employee]

// SystemHandler serves /api/systems.
type SystemHandler = RecordHandler[model.System]

// ListHandler returns every record.
func (h *RecordHandler[T]) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, LongRunningTimeout)
	defer cancel()

	records, err := h.Service.List(ctx)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err)
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "", records)
}

// GetHandler returns the record named by the id path variable.
func (h *RecordHandler[T]) GetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.ErrorHandler.ParseRecordID(w, mux.Vars(r)["id"], h.Service.Entity())
	if !ok {
		return
	}

	record, err := h.Service.Get(ctx, id)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err)
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, "", record)
}

// CreateHandler stores the record in the request body.
func (h *RecordHandler[T]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	record, err := h.decode(w, r)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, h.Service.InvalidPayload("create", err))
		return
	}

	created, err := h.Service.Create(ctx, record)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err)
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusCreated, h.Service.Entity().CreatedMessage(), created)
}

// UpdateHandler replaces the record named by the id path variable with the
// request body.
func (h *RecordHandler[T]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.ErrorHandler.ParseRecordID(w, mux.Vars(r)["id"], h.Service.Entity())
	if !ok {
		return
	}

	record, err := h.decode(w, r)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, h.Service.InvalidPayload("update", err))
		return
	}

	updated, err := h.Service.Replace(ctx, id, record)
	if err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err)
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, h.Service.Entity().UpdatedMessage(), updated)
}

// DeleteHandler removes the record named by the id path variable.
func (h *RecordHandler[T]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	id, ok := h.ErrorHandler.ParseRecordID(w, mux.Vars(r)["id"], h.Service.Entity())
	if !ok {
		return
	}

	if err := h.Service.Delete(ctx, id); err != nil {
		h.ErrorHandler.HandleServiceError(w, r, err)
		return
	}

	h.ErrorHandler.SendSuccessResponse(w, http.StatusOK, h.Service.Entity().DeletedMessage(), nil)
}

func (h *RecordHandler[T]) decode(w http.ResponseWriter, r *http.Request) (T, error) {
	var record T
	body := http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&record); err != nil {
		return record, err
	}
	return record, nil
}
