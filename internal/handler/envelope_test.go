package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
)

func handleErr(t *testing.T, env string, method string, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/post/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(env, nil)(err, c)

	var resp envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, resp
}

func TestErrorHandlerAppError(t *testing.T) {
	rec, resp := handleErr(t, "dev", http.MethodGet, apperr.NotFound("Post not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.StatusCode != http.StatusNotFound || resp.Message != "Post not found" {
		t.Errorf("got statusCode=%d message=%q", resp.StatusCode, resp.Message)
	}
}

func TestErrorHandlerValidationFields(t *testing.T) {
	err := apperr.Validation(
		apperr.FieldError{Field: "email", Message: "Invalid email format"},
		apperr.FieldError{Field: "password", Message: "Password is required"},
	)
	rec, resp := handleErr(t, "dev", http.MethodPost, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("errors = %+v, want 2 entries", resp.Errors)
	}
	if resp.Errors[0].Field != "email" {
		t.Errorf("first field = %q, want email", resp.Errors[0].Field)
	}
}

func TestErrorHandlerInternalDetail(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	_, dev := handleErr(t, "dev", http.MethodGet, apperr.Internal("Internal server error", cause))
	if !strings.Contains(dev.Detail, "connection refused") {
		t.Errorf("dev detail = %q, want cause included", dev.Detail)
	}

	_, prod := handleErr(t, "prod", http.MethodGet, apperr.Internal("Internal server error", cause))
	if prod.Detail != "" {
		t.Errorf("prod detail = %q, want empty", prod.Detail)
	}
}

func TestErrorHandlerUnknownError(t *testing.T) {
	rec, resp := handleErr(t, "prod", http.MethodGet, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Message != "Internal server error" || resp.Detail != "" {
		t.Errorf("got message=%q detail=%q", resp.Message, resp.Detail)
	}
}

func TestErrorHandlerEchoHTTPError(t *testing.T) {
	rec, resp := handleErr(t, "dev", http.MethodGet, echo.ErrNotFound)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want 404", resp.StatusCode)
	}
}

func TestErrorHandlerHead(t *testing.T) {
	rec, _ := handleErr(t, "dev", http.MethodHead, apperr.NotFound("Post not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body = %q, want empty", rec.Body.String())
	}
}
