package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

var extensionsByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// IsImageContentType reports whether contentType is one of the accepted photo formats.
func IsImageContentType(contentType string) bool {
	_, ok := extensionsByContentType[normalizeContentType(contentType)]
	return ok
}

// ObjectKey строит ключ вида <prefix>/<ownerID>/<uuid><ext>.
func ObjectKey(prefix, ownerID, contentType string) string {
	ext := extensionsByContentType[normalizeContentType(contentType)]
	return path.Join(prefix, ownerID, uuid.NewString()+ext)
}

func normalizeContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
