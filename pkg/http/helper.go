package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/model"
)

// DecodeJSON reads a single JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Request body is required")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("Request body is required")
		default:
			return apperrors.InvalidInput("Invalid request body").WithDetails(map[string]any{"error": err.Error()})
		}
	}
	if dec.More() {
		return apperrors.InvalidInput("Request body must contain a single JSON object")
	}
	return nil
}

// QueryFloat parses an optional numeric query parameter. Absent means nil.
func QueryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", key, raw))
	}
	return &v, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, key string) (*model.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter, must be YYYY-MM-DD: %s", key, raw))
	}
	return &d, nil
}

// ReadUpload returns the named multipart file. Files above maxSize are
// rejected with 413.
func ReadUpload(r *http.Request, field string, maxSize int64) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, apperrors.New(apperrors.CodeInvalidInput, "Upload too large", http.StatusRequestEntityTooLarge)
		}
		return "", nil, apperrors.InvalidInput("Request must be multipart/form-data").WithDetails(map[string]any{"error": err.Error()})
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, apperrors.Validation("Invalid upload", map[string]any{field: fmt.Sprintf("%s file is required", field)})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return "", nil, apperrors.InvalidInput("Failed to read upload")
	}
	if int64(len(data)) > maxSize {
		return "", nil, apperrors.New(apperrors.CodeInvalidInput, "Upload too large", http.StatusRequestEntityTooLarge)
	}
	return header.Filename, data, nil
}
