package endpoints

import (
	"codemasti"
	"codemasti/internal/api/handler/middleware"
	"codemasti/internal/realtime"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type websocketHandler struct {
	hub    *realtime.Hub
	logger zerolog.Logger
	config codemasti.AppConfig
}

func newWebSocketHandler(hub *realtime.Hub) *websocketHandler {
	return &websocketHandler{
		hub:    hub,
		logger: codemasti.Logger,
		config: codemasti.GetConfig(),
	}
}

// WebSocketHandler exposes the verdict stream. Clients send
// {"action":"subscribe","submissionId":"..."} after connecting.
func WebSocketHandler(router *graceful.Graceful, hub *realtime.Hub) {
	h := newWebSocketHandler(hub)

	wsRoutes := router.Group("/api/v1/harness/ws")
	wsRoutes.Use(middleware.AuthMiddleware(h.config))
	{
		wsRoutes.GET("/verdicts", h.handleWebSocket)
	}
}

func (slf *websocketHandler) handleWebSocket(c *gin.Context) {
	slf.logger.Debug().Str("remote", c.ClientIP()).Msg("Verdict stream requested")
	realtime.ServeWS(slf.hub, c.Writer, c.Request)
}
