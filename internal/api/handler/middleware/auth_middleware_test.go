package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"codemasti"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(cfg codemasti.AppConfig, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(logger), AuthMiddleware(cfg))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := codemasti.AppConfig{Mode: "prod", ApiKey: "s3cret"}
	router := newRouter(cfg, zerolog.Nop())

	tests := []struct {
		name   string
		url    string
		header string
		want   int
	}{
		{"no key", "/ping", "", http.StatusUnauthorized},
		{"bearer key", "/ping", "Bearer s3cret", http.StatusOK},
		{"wrong key", "/ping", "Bearer nope", http.StatusUnauthorized},
		{"malformed header", "/ping", "s3cret", http.StatusUnauthorized},
		{"query key", "/ping?key=s3cret", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	for _, cfg := range []codemasti.AppConfig{{Mode: "dev", ApiKey: "s3cret"}, {Mode: "prod"}} {
		rec := httptest.NewRecorder()
		newRouter(cfg, zerolog.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(codemasti.AppConfig{Mode: "prod", ApiKey: "s3cret"}, zerolog.New(&buf))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"status":401`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
}
