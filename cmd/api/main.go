// @title The Sanctuary API
// @version 1.0
// @description Verify that a YouTube video was watched before commenting on it.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sanctuary/internal/app"
	"sanctuary/internal/config"
	"sanctuary/internal/handler"
	"sanctuary/internal/logger"
	"sanctuary/internal/middleware"
	"sanctuary/internal/validation"

	_ "sanctuary/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	comps, err := app.Build(context.Background(), cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer comps.Close()

	validator := validation.NewValidator()
	verificationHandler := handler.NewVerificationHandler(comps.Verification, validator, cfg.Session.TTL)
	videoIDParam := middleware.NewValidationMiddleware(validator).ValidateVideoID()

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(requestLogger())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," + middleware.SessionHeader,
		MaxAge:       300,
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	fiberApp.Get("/health", verificationHandler.Health)

	api := fiberApp.Group("/api", middleware.Session(comps.Sessions))
	api.Get("/topics", verificationHandler.GetTopics)
	api.Get("/session", verificationHandler.GetSession)
	api.Post("/videos", verificationHandler.SubmitVideo)
	api.Get("/videos/:videoId", videoIDParam, verificationHandler.GetVideo)
	api.Get("/videos/:videoId/quiz", videoIDParam, verificationHandler.GetQuiz)
	api.Post("/videos/:videoId/quiz/check", videoIDParam, verificationHandler.CheckAnswers)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
