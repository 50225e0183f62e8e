package main

import (
	"codemasti"
	"codemasti/internal/api/handler/endpoints"
	"codemasti/internal/api/handler/middleware"
	"codemasti/internal/api/models"
	"codemasti/internal/api/service"
	"codemasti/internal/realtime"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	codemasti.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if codemasti.GetConfig().Mode == "dev" {
		if err := codemasti.DB.AutoMigrate(
			&models.Problem{},
			&models.ProblemTestCase{},
		); err != nil {
			codemasti.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		codemasti.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(codemasti.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	if codemasti.Nats != nil {
		defer func() {
			if err := codemasti.Nats.Drain(); err != nil {
				codemasti.Logger.Error().Err(err).Msg("Failed to drain NATS connection")
			}
		}()
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger(codemasti.Logger))

	harnessService := service.NewHarnessService()
	hub := realtime.NewHub(codemasti.Logger)
	go hub.Run(ctx)

	if codemasti.Nats != nil {
		listener := realtime.NewResultListener(codemasti.Nats, codemasti.GetConfig().NatsConfig.ResultSubject, harnessService.Judge, hub, codemasti.Logger)
		if err := listener.Subscribe(); err != nil {
			codemasti.Logger.Error().Err(err).Msg("Verdict stream disabled")
		} else {
			defer listener.Close()
		}
	}

	initAPI(router, harnessService, hub)

	codemasti.Logger.Debug().Msgf("Starting harness API on port %s", codemasti.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		codemasti.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, harnessService *service.HarnessService, hub *realtime.Hub) {
	endpoints.HarnessHandler(router, harnessService)
	endpoints.WebSocketHandler(router, hub)
}
