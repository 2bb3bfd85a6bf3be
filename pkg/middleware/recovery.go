package middleware

import (
	"net/http"
	"runtime/debug"

	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
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

				log.Error("Panic recovered",
					logger.REQUEST_ID, logger.RequestID(r.Context()),
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				_ = httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
					Error: "Internal server error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
