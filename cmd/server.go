package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/easilyhq/easily/board/job/jobapi"
	"github.com/easilyhq/easily/board/user/userapi"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	if os.Getenv("LOG_LEVEL") == "debug" {
		logx.SetLevel(logx.LevelDebug)
	}
	logx.Info("Starting Easily API Server...")
	defer logx.Sync()

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.Close()

	// 3. Background workers and seed data
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	container.MailWorker.Start(workerCtx)

	if os.Getenv("SEED") != "false" {
		if err := container.Seeder.Run(context.Background()); err != nil {
			logx.Errorf("Seeding failed: %v", err)
		}
	}

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Easily API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, HEAD",
		AllowCredentials: false,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok"}
		if container.DB != nil {
			status["db"] = container.DB.Ping() == nil
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(status)
	})

	// 7. Register Routes
	authMiddleware := userauth.Middleware(container.TokenService)

	// Accounts: /api/auth/*
	userapi.RegisterRoutes(app, container.UserHandlers, authMiddleware)

	// Jobs and applications: /api/jobs, /api/my-applications
	jobapi.RegisterRoutes(app, container.JobHandlers, authMiddleware)

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")
	stopWorkers()

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber's own errors (e.g. 404 route not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
