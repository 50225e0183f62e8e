package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"codemasti"
	"codemasti/internal/api/handler/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthMiddleware guards the harness API with the shared key of the judge
// services. The key is read from the Authorization header ("Bearer <key>"),
// or from the key query parameter for websocket upgrades.
func AuthMiddleware(cfg codemasti.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Mode == "dev" || cfg.ApiKey == "" {
			c.Next()
			return
		}

		key := c.Query("key")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Invalid authorization header format"})
				return
			}
			key = parts[1]
		}

		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Authorization header required"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Invalid API key"})
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
