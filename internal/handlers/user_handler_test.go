package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/middleware"
)

func TestLoginFormShowsRedirectTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fl := flash.NewStore("test-secret", false)

	// A prior guarded request saved where the user was headed.
	seed := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(seed)
	c.Request = httptest.NewRequest(http.MethodGet, "/listings/new", nil)
	fl.SaveRedirectURL(c, "/listings/new")

	r := gin.New()
	r.GET("/users/login", middleware.SaveRedirectURL(fl), LoginForm(fl))

	req := httptest.NewRequest(http.MethodGet, "/users/login", nil)
	for _, cookie := range seed.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			View        string `json:"view"`
			RedirectURL string `json:"redirect_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Data.View != "users/login" {
		t.Errorf("view = %q", body.Data.View)
	}
	if body.Data.RedirectURL != "/listings/new" {
		t.Errorf("redirect_url = %q, want /listings/new", body.Data.RedirectURL)
	}
}

func TestLoginFormWithoutSavedTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fl := flash.NewStore("test-secret", false)

	r := gin.New()
	r.GET("/users/login", middleware.SaveRedirectURL(fl), LoginForm(fl))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/login", nil))

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if _, present := body.Data["redirect_url"]; present {
		t.Error("redirect_url present without a saved target")
	}
}
