package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                   {}
func (nopLogger) Debugf(ctx context.Context, template string, args ...any) {}
func (nopLogger) Info(ctx context.Context, args ...any)                    {}
func (nopLogger) Infof(ctx context.Context, template string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                    {}
func (nopLogger) Warnf(ctx context.Context, template string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, args ...any)                   {}
func (nopLogger) Errorf(ctx context.Context, template string, args ...any) {}

func authRequest(t *testing.T, token, header string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mw := New(nopLogger{}, token, nil)
	router := gin.New()
	router.GET("/admin", mw.Auth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w.Code
}

func TestAuth(t *testing.T) {
	t.Run("Valid Token", func(t *testing.T) {
		if code := authRequest(t, "secret", "Bearer secret"); code != http.StatusOK {
			t.Errorf("expected 200, got %d", code)
		}
	})

	t.Run("Wrong Token", func(t *testing.T) {
		if code := authRequest(t, "secret", "Bearer nope"); code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})

	t.Run("Missing Header", func(t *testing.T) {
		if code := authRequest(t, "secret", ""); code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})

	t.Run("No Bearer Prefix", func(t *testing.T) {
		if code := authRequest(t, "secret", "secret"); code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})

	t.Run("Unconfigured Token Closes API", func(t *testing.T) {
		if code := authRequest(t, "", "Bearer anything"); code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
	})
}
