package middleware

import (
	"mime"
	"net/http"

	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"
)

const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// UploadMatcher reports whether a request targets an upload endpoint that
// accepts multipart bodies.
type UploadMatcher func(r *http.Request) bool

// ContentTypeValidation requires JSON bodies on POST and PUT, except for
// upload endpoints which require multipart/form-data.
func ContentTypeValidation(log *logger.Logger, isUpload UploadMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresContentType(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			want := ContentTypeJSON
			if isUpload != nil && isUpload(r) {
				want = ContentTypeMultipart
			}

			got, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || got != want {
				log.Warn("Invalid Content-Type header",
					logger.REQUEST_ID, logger.RequestID(r.Context()),
					"content_type", r.Header.Get("Content-Type"),
					"expected", want,
					"path", r.URL.Path,
					"method", r.Method,
				)
				_ = httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.ErrorResponse{
					Error: "Content-Type must be " + want,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}
