package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/storage"
)

// Context keys set by the upload stages when a file was accepted.
const (
	CtxImagePath      = "image_path"
	CtxProfilePicPath = "profile_pic_path"
)

// PostImageUpload accepts an optional multipart "image" field, persists
// it through the store and exposes the resulting path on the context.
// Whether an image is actually required is the validation stage's call,
// so a missing file passes through here. Type and size rejections come
// back from the store as field-scoped validation errors.
func PostImageUpload(store *storage.ImageStore) echo.MiddlewareFunc {
	return uploadStage(store, storage.KindPost, "image", CtxImagePath)
}

// ProfilePicUpload accepts an optional multipart "profilePic" field for
// signup, limited to 2MB.
func ProfilePicUpload(store *storage.ImageStore) echo.MiddlewareFunc {
	return uploadStage(store, storage.KindProfile, "profilePic", CtxProfilePicPath)
}

func uploadStage(store *storage.ImageStore, kind storage.Kind, field, ctxKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fh, err := c.FormFile(field)
			if err != nil {
				// No file in the request (or not multipart at all).
				return next(c)
			}
			path, err := store.Save(kind, field, fh)
			if err != nil {
				return err
			}
			c.Set(ctxKey, path)
			return next(c)
		}
	}
}
