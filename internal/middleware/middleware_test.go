package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/services"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newTestEngine()
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	r := newTestEngine()
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "given-id" {
		t.Errorf("X-Request-ID = %q, want given-id", got)
	}
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", apperr.NotFound("Listing not found"), http.StatusNotFound, "Listing not found"},
		{"validation", apperr.Validation(`"title" is required`), http.StatusBadRequest, `"title" is required`},
		{"upstream", apperr.Upstream("Could not find location on map"), http.StatusBadRequest, "Could not find location on map"},
		{"forbidden", apperr.Forbidden("You do not have permission to edit this listing"), http.StatusForbidden, "You do not have permission to edit this listing"},
		{"internal hides details", apperr.Internal(errors.New("mongo: connection reset")), http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tt := range tests {
		r := newTestEngine()
		r.GET("/boom", func(c *gin.Context) { c.Error(tt.err) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if w.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.wantStatus)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid JSON body: %v", tt.name, err)
		}
		if body["error"] != tt.wantError {
			t.Errorf("%s: error = %q, want %q", tt.name, body["error"], tt.wantError)
		}
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	fl := flash.NewStore("test-secret", false)
	userService := services.NewUserService(nil, nil, "secret")

	r := newTestEngine()
	r.GET("/listings/new", RequireAuth(userService, fl), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/new", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/users/login" {
		t.Errorf("Location = %q, want /users/login", got)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("expected the session cookie carrying the notice and redirect target")
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	fl := flash.NewStore("test-secret", false)
	userService := services.NewUserService(nil, nil, "secret")

	r := newTestEngine()
	r.GET("/listings/new", RequireAuth(userService, fl), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/listings/new", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want a redirect to login", w.Code)
	}
}
