package handler

import (
	"asset-registry-api/internal/service"
	apperrors "asset-registry-api/pkg/errors"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorHandler provides centralized error handling functionality for handlers
type ErrorHandler struct {
	Logger *zap.Logger
	helper *ResponseHelper
}

// NewErrorHandler creates a new ErrorHandler instance
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{
		Logger: logger,
		helper: NewResponseHelper(),
	}
}

// SendEnvelope writes env as the JSON response body.
func (e *ErrorHandler) SendEnvelope(w http.ResponseWriter, statusCode int, env Envelope) {
	e.helper.SetCommonHeaders(w)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		e.Logger.Error("Failed to encode response", zap.Error(err))
	}
}

// SendSuccessResponse sends a success envelope. An empty message is omitted.
func (e *ErrorHandler) SendSuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	e.SendEnvelope(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

// SendErrorResponse sends a failure envelope. detail is the raw cause and is
// omitted when empty.
func (e *ErrorHandler) SendErrorResponse(w http.ResponseWriter, statusCode int, message, detail string) {
	e.SendEnvelope(w, statusCode, Envelope{Success: false, Message: message, Error: detail})
}

// HandleServiceError maps an application error to its status code and
// envelope. Errors that are not AppErrors are reported as internal failures.
func (e *ErrorHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.WrapError(err, "Internal server error")

	if requestID := e.helper.GetRequestIDFromContext(r.Context()); requestID != "" {
		appErr.WithRequestID(requestID)
	}

	status := appErr.GetHTTPStatus()
	if status >= http.StatusInternalServerError {
		e.Logger.Error("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.String("request_id", appErr.RequestID),
			zap.Error(appErr.Cause),
		)
	}

	e.SendErrorResponse(w, status, appErr.Message, appErr.Detail())
}

// ParseRecordID parses the id path variable. Ids that are not UUIDs cannot
// name a stored record, so they are answered with the entity's not found
// response.
func (e *ErrorHandler) ParseRecordID(w http.ResponseWriter, idStr string, entity service.Entity) (uuid.UUID, bool) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		e.Logger.Debug("Unparseable record id", zap.String("id", idStr), zap.Error(err))
		e.SendErrorResponse(w, http.StatusNotFound, entity.NotFoundMessage(), "")
		return uuid.Nil, false
	}
	return id, true
}
