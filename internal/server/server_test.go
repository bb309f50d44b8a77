package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type testHandler struct {
	registered bool
}

func (h *testHandler) Register(e *echo.Echo) {
	h.registered = true
	e.GET("/test", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func TestNewServerRegistersHandlers(t *testing.T) {
	t.Parallel()

	h := &testHandler{}
	srv := NewServer(slog.Default(), "", h, nil)
	if !h.registered {
		t.Fatal("handler was not registered")
	}
	if srv.addr != ":8080" {
		t.Fatalf("addr = %q, want default :8080", srv.addr)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequestValidator(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `validate:"required"`
	}

	srv := NewServer(slog.Default(), ":0")
	if err := srv.echo.Validator.Validate(&payload{}); err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if err := srv.echo.Validator.Validate(&payload{Name: "ok"}); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
