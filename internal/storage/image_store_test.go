package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/iliyamo/photo-feed/internal/apperr"
)

// fileHeader assembles a real multipart.FileHeader by writing and
// re-parsing a multipart body, so Open() works on the result.
func fileHeader(t *testing.T, field, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File[field][0]
}

func TestSave_AcceptsJPEGAndReturnsPostPath(t *testing.T) {
	t.Parallel()

	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	fh := fileHeader(t, "image", "photo.JPG", "image/jpeg", []byte("fake-jpeg-bytes"))
	path, err := store.Save(KindPost, "image", fh)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/posts/") {
		t.Fatalf("path %q must start with /uploads/posts/", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("path %q must preserve the lower-cased extension", path)
	}

	// The file must exist on disk under the store root.
	name := strings.TrimPrefix(path, "/uploads/")
	if _, err := os.Stat(store.Root + "/" + name); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSave_RejectsDisallowedType(t *testing.T) {
	t.Parallel()

	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	fh := fileHeader(t, "image", "doc.gif", "image/gif", []byte("gif"))
	_, err = store.Save(KindPost, "image", fh)

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if ae.Kind != apperr.KindBadRequest {
		t.Fatalf("expected BadRequest, got kind %d", ae.Kind)
	}
	if len(ae.Fields) != 1 || ae.Fields[0].Field != "image" {
		t.Fatalf("expected a field error scoped to image, got %+v", ae.Fields)
	}
}

func TestSave_RejectsOversizedUpload(t *testing.T) {
	t.Parallel()

	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	// Size checks read FileHeader.Size, so a synthetic header suffices.
	fh := &multipart.FileHeader{
		Filename: "big.png",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
		Size:     (2 << 20) + 1,
	}
	_, err = store.Save(KindProfile, "profilePic", fh)

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if len(ae.Fields) != 1 || ae.Fields[0].Field != "profilePic" {
		t.Fatalf("expected a field error scoped to profilePic, got %+v", ae.Fields)
	}
	if !strings.Contains(ae.Fields[0].Message, "2MB") {
		t.Fatalf("profile limit message should mention 2MB: %q", ae.Fields[0].Message)
	}
}
