package middleware

import (
	"net/http"
)

// multipartOverhead leaves room for boundaries and part headers around an
// uploaded file.
const multipartOverhead = 64 << 10

// MaxRequestSize caps request bodies. Upload endpoints get uploadLimit plus
// multipart framing, everything else gets jsonLimit.
func MaxRequestSize(jsonLimit, uploadLimit int64, isUpload UploadMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := jsonLimit
			if isUpload != nil && isUpload(r) {
				limit = uploadLimit + multipartOverhead
			}
			if r.ContentLength > limit {
				w.Header().Set("Connection", "close")
				http.Error(w, `{"error":"Request body too large"}`, http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
