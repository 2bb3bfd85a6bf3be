// Package imagehost stores uploaded images and hands back public URLs.
package imagehost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
)

// PathPrefix is where the API serves hosted images.
const PathPrefix = "/images/"

var (
	ErrEmpty         = errors.New("image is empty")
	ErrTooLarge      = errors.New("image exceeds the maximum upload size")
	ErrNotImage      = errors.New("content is not a supported image")
	ErrInvalidFolder = errors.New("invalid image folder")
)

var (
	folderRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

	allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

// Host uploads binary images and returns the URL they are reachable at.
type Host interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (string, error)
}

// LocalHost writes images under dir/<folder>/ and builds URLs from baseURL.
type LocalHost struct {
	dir     string
	baseURL string
	maxSize int
	log     *logger.Logger
}

func NewLocalHost(dir, baseURL string, maxSize int, log *logger.Logger) (*LocalHost, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &LocalHost{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		log:     log,
	}, nil
}

func (h *LocalHost) Dir() string {
	return h.dir
}

// Upload sniffs the content, ignores the client's file extension and
// stores the image under a fresh name.
func (h *LocalHost) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !folderRegex.MatchString(folder) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if h.maxSize > 0 && len(data) > h.maxSize {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), h.maxSize)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	name := uuid.NewString() + mtype.Extension()
	target := filepath.Join(h.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image folder: %w", err)
	}
	if err := writeFile(target, name, data); err != nil {
		return "", err
	}

	h.log.Info("Image stored",
		"folder", folder,
		"original_name", filename,
		"stored_name", name,
		"mime", mtype.String(),
		"size", len(data),
	)

	return h.baseURL + path.Join(PathPrefix, url.PathEscape(folder), url.PathEscape(name)), nil
}

func writeFile(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to store image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// AsAppError maps upload rejections to client errors. Anything else is an
// internal failure of the host.
func AsAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTooLarge):
		return apperrors.New(apperrors.CodeInvalidInput, "Image too large", http.StatusRequestEntityTooLarge).WithCause(err)
	case errors.Is(err, ErrEmpty), errors.Is(err, ErrNotImage):
		return apperrors.Validation("Invalid image", map[string]any{"image": err.Error()}).WithCause(err)
	default:
		return apperrors.Internal("Failed to store image", err)
	}
}
