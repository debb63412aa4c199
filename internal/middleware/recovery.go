package middleware

import (
	"net/http"
	"runtime/debug"

	"asset-registry-api/internal/handler"

	"go.uber.org/zap"
)

// Recover turns a panicking handler into a 500 envelope.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	errs := handler.NewErrorHandler(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				errs.Logger.Error("Handler panicked",
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				errs.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
