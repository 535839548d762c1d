package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pousada/errors"
	"pousada/types"

	"github.com/gin-gonic/gin"
)

type stubVerifier map[string]types.AuthUser

func (s stubVerifier) Verify(_ context.Context, token string) (*types.AuthUser, error) {
	u, ok := s[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &u, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{
		"admin": {ID: 1, Role: "admin"},
		"user":  {ID: 3, Role: "user"},
	}
	r := gin.New()
	r.Use(SessionMiddleware(), ErrorHandler())
	authed := r.Group("", AuthMiddleware(verifier))
	authed.GET("/me", func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, u)
	})
	authed.GET("/staff", RoleMiddleware("admin", "gerente"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/admin-only", AuthMiddleware(verifier, "admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/fails", func(c *gin.Context) {
		_ = c.Error(apperrors.Conflict("taken"))
	})
	r.GET("/panics-quietly", func(c *gin.Context) {
		_ = c.Error(errors.New("db exploded"))
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	tests := []struct {
		path, token string
		want        int
	}{
		{"/me", "", http.StatusUnauthorized},
		{"/me", "nope", http.StatusUnauthorized},
		{"/me", "user", http.StatusOK},
		{"/staff", "user", http.StatusForbidden},
		{"/staff", "admin", http.StatusNoContent},
		{"/admin-only", "user", http.StatusForbidden},
		{"/admin-only", "admin", http.StatusNoContent},
	}
	for _, tt := range tests {
		if w := get(r, tt.path, tt.token); w.Code != tt.want {
			t.Errorf("GET %s as %q = %d, want %d", tt.path, tt.token, w.Code, tt.want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for header, want := range map[string]string{
		"Bearer abc":  "abc",
		"Bearer  abc": "abc",
		"Basic abc":   "",
		"":            "",
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", header)
		if got := BearerToken(c); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestErrorHandlerMapsCodes(t *testing.T) {
	r := newRouter()

	w := get(r, "/fails", "")
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"taken"}` {
		t.Errorf("conflict = %d %s", w.Code, w.Body)
	}
	w = get(r, "/panics-quietly", "")
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"internal server error"}` {
		t.Errorf("internal = %d %s", w.Code, w.Body)
	}
}

func TestSessionMiddlewareKeepsCallerRequestID(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/fails", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("request id = %q, want req-123", got)
	}
	if w := get(r, "/fails", ""); len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("generated request id = %q, want a uuid", w.Header().Get(RequestIDHeader))
	}
}
