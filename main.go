package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"yt-highlights/config"
	"yt-highlights/handlers"
	"yt-highlights/llm"
	"yt-highlights/logger"
	"yt-highlights/pipeline"
	"yt-highlights/repository/sqlite"
	"yt-highlights/services/highlight"
	"yt-highlights/services/video"
	"yt-highlights/storage"
	"yt-highlights/validation"
	"yt-highlights/youtube"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logOutput, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := sqlite.InitDB(cfg.Database.Path, cfg.Database.MaxConnections)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	channelRepo := sqlite.NewChannelRepository(db)
	videoRepo := sqlite.NewVideoRepository(db)
	transcriptRepo := sqlite.NewTranscriptRepository(db)
	highlightRepo := sqlite.NewHighlightRepository(db)

	// Initialize transcript archive if configured
	var archive *storage.ArchiveClient
	if cfg.Archive.Enabled() {
		archive, err = storage.NewArchiveClient(cfg.Archive)
		if err != nil {
			log.Fatalf("Failed to initialize transcript archive: %v", err)
		}
	}

	// Initialize pipeline
	generator := llm.NewClient(cfg.LLM)
	pl := pipeline.New(generator, pipeline.ConfigFrom(cfg))

	// Initialize services
	videoService := video.NewService(
		channelRepo,
		videoRepo,
		transcriptRepo,
		highlightRepo,
		youtube.NewClient(cfg.Video.FetchRetries),
		pl,
		archive,
		validation.NewValidator(),
		video.Config{
			ProcessTimeout: cfg.Video.ProcessTimeout,
			StaleAfter:     cfg.Video.StaleAfter,
			Model:          cfg.LLM.Model,
		},
	)
	highlightService := highlight.NewService(highlightRepo, pl)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.Debug,
		StrictRouting:         true,
		CaseSensitive:         true,
		AppName:               "yt-highlights " + cfg.Version,
	})

	setupMiddleware(app, cfg, logOutput)
	setupRoutes(app, videoService, highlightService)

	// Graceful shutdown setup
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := db.Close(); err != nil {
			log.Printf("Database shutdown error: %v", err)
		}
	}()

	// Start server
	serverAddr := ":" + cfg.ServerPort
	if cfg.Debug {
		log.Printf("Server starting on http://localhost%s", serverAddr)
	}

	if err := app.Listen(serverAddr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func setupMiddleware(app *fiber.App, cfg *config.Config, logOutput io.Writer) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	app.Use(fiberLogger.New(*logger.NewFiberConfig(logOutput)))

	if cfg.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
			AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
			AllowHeaders:     strings.Join(cfg.CORS.AllowedHeaders, ","),
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}

	app.Use(compress.New(compress.Config{
		Level: compress.LevelDefault,
	}))

	app.Use(etag.New())
}

func setupRoutes(app *fiber.App, videoService video.Service, highlightService highlight.Service) {
	videoHandler := handlers.NewVideoHandler(videoService)
	channelHandler := handlers.NewChannelHandler(videoService)
	highlightHandler := handlers.NewHighlightHandler(highlightService)

	// Channels
	app.Post("/api/channels", channelHandler.Register)
	app.Get("/api/channels", channelHandler.List)
	app.Get("/api/channels/:id/videos", channelHandler.ListVideos)

	// Videos
	app.Post("/api/videos", videoHandler.Submit)
	app.Get("/api/videos/:id", videoHandler.Get)
	app.Get("/api/videos/:id/transcript", videoHandler.GetTranscript)
	app.Get("/api/videos/:id/highlights", highlightHandler.ListByVideo)

	// Highlights
	app.Put("/api/highlights/:id", highlightHandler.Review)
	app.Post("/api/highlights/:id/regenerate", highlightHandler.Regenerate)

	// Health check
	app.Get("/health", handlers.HealthCheck)
}
