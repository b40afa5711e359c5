// Package storage persists uploaded images on local disk and hands back
// the root-relative paths that are served under /uploads.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/photo-feed/internal/apperr"
)

// Kind selects the sub-directory and size limit for an upload.
type Kind string

const (
	KindPost    Kind = "posts"
	KindProfile Kind = "profiles"
)

const (
	maxPostImageBytes    = 5 << 20 // 5MB
	maxProfileImageBytes = 2 << 20 // 2MB
)

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageStore writes accepted images under Root/<kind>/ with
// collision-resistant names and returns /uploads/<kind>/<name> paths.
type ImageStore struct {
	Root string
}

// NewImageStore creates the per-kind directories under root.
func NewImageStore(root string) (*ImageStore, error) {
	for _, k := range []Kind{KindPost, KindProfile} {
		if err := os.MkdirAll(filepath.Join(root, string(k)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &ImageStore{Root: root}, nil
}

// Save validates and persists a single multipart image. Type and size
// rejections come back as field-scoped validation errors carrying the
// given field name, shaped exactly like the validation layer's output.
func (s *ImageStore) Save(kind Kind, field string, fh *multipart.FileHeader) (string, error) {
	limit := int64(maxPostImageBytes)
	limitLabel := "5MB"
	if kind == KindProfile {
		limit = maxProfileImageBytes
		limitLabel = "2MB"
	}

	if !allowedMIMETypes[fh.Header.Get("Content-Type")] {
		return "", apperr.Validation(apperr.FieldError{
			Field:   field,
			Message: "Only JPEG, PNG, and WEBP images are allowed.",
		})
	}
	if fh.Size > limit {
		return "", apperr.Validation(apperr.FieldError{
			Field:   field,
			Message: fmt.Sprintf("Image must be at most %s.", limitLabel),
		})
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal("Image upload failed", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Root, string(kind), name))
	if err != nil {
		return "", apperr.Internal("Image upload failed", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperr.Internal("Image upload failed", err)
	}
	return "/uploads/" + string(kind) + "/" + name, nil
}
