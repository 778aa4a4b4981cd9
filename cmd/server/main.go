package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/contentdeskhq/contentdesk/configs"
	"github.com/contentdeskhq/contentdesk/internal/api/handlers"
	"github.com/contentdeskhq/contentdesk/internal/api/middleware"
	"github.com/contentdeskhq/contentdesk/internal/gateway"
	job "github.com/contentdeskhq/contentdesk/internal/jobs"
	"github.com/contentdeskhq/contentdesk/internal/legacy"
	"github.com/contentdeskhq/contentdesk/internal/queue"
	"github.com/contentdeskhq/contentdesk/internal/realtime"
	"github.com/contentdeskhq/contentdesk/internal/repository"
	"github.com/contentdeskhq/contentdesk/internal/service"
	"github.com/contentdeskhq/contentdesk/internal/store"
	"github.com/contentdeskhq/contentdesk/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, apikey",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	contentRepo := repository.NewContentItemRepository(db)
	assetRepo := repository.NewBrandAssetRepository(db)
	trainingRepo := repository.NewTrainingImageRepository(db)
	presetRepo := repository.NewStylePresetRepository(db)

	storageService := service.NewStorageService(*cfg)
	genaiService := service.NewGenAIService(*cfg)
	if !cfg.GenAIEnabled() {
		log.Println("GENAI_API_KEY is not set; the generation panel is disabled")
	}

	hub := ws.NewHub()

	providers := []gateway.ContentRepository{gateway.NewPrimary(contentRepo, storageService)}
	if cfg.LegacyAPIURL != "" {
		providers = append(providers, legacy.NewClient(cfg.LegacyAPIURL))
	}
	repo := gateway.NewChain(providers...)

	contentStore := store.New(repo, hub)
	contentStore.Initialize(context.Background())

	mediaService := service.NewMediaService(repo)
	assetService := service.NewAssetService(assetRepo, storageService)
	trainingService := service.NewTrainingService(trainingRepo, storageService)
	presetService := service.NewPresetService(presetRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subscriber := realtime.NewSubscriber(cfg.PostgresURI, cfg.NotifyChannel)
	go func() {
		if err := subscriber.Listen(ctx); err != nil && err != context.Canceled {
			log.Printf("Realtime listener stopped: %v", err)
		}
	}()
	go func() {
		// Reconciliation first, then the mirror to connected UIs, so clients
		// never see an event the local state has not absorbed yet.
		for ev := range subscriber.Events() {
			contentStore.ApplyChange(ctx, ev)
			hub.BroadcastChange(ev)
		}
	}()

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg)
	app.Post("/auth/session", auth.CreateSession)
	app.Post("/auth/logout", auth.DestroySession)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	platform := handlers.NewPlatformHandler(contentStore)
	api.Get("/platforms", platform.ListPlatforms)
	api.Get("/state", platform.AppState)

	post := handlers.NewPostHandler(contentStore, mediaService)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/calendar", post.Calendar)
	api.Get("/posts/counts", post.Counts)
	api.Post("/posts/create", post.CreatePost)
	api.Post("/posts/update", post.UpdatePost)
	api.Post("/posts/submit", post.SubmitForReview)
	api.Post("/posts/remove", post.RemovePost)
	api.Post("/posts/load", post.LoadPlatform)
	api.Post("/sync", post.SyncNow)

	asset := handlers.NewAssetHandler(assetService)
	api.Get("/assets", asset.ListAssets)
	api.Post("/assets/upload", asset.UploadAsset)
	api.Post("/assets/update", asset.UpdateAsset)
	api.Post("/assets/remove", asset.RemoveAsset)

	training := handlers.NewTrainingHandler(trainingService)
	api.Get("/training_images", training.ListImages)
	api.Post("/training_images/upload", training.UploadImages)
	api.Post("/training_images/remove", training.RemoveImage)

	preset := handlers.NewPresetHandler(presetService)
	api.Get("/presets", preset.ListPresets)
	api.Post("/presets/create", preset.CreatePreset)
	api.Post("/presets/update", preset.UpdatePreset)
	api.Post("/presets/remove", preset.RemovePreset)

	generation := handlers.NewGenerationHandler(genaiService, client)
	api.Get("/generate/status", generation.Status)
	api.Post("/generate", generation.Generate)

	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", hub.Handler())

	// cron jobs
	syncJob := job.NewSyncJob(contentStore)

	//queue
	queueW := queue.NewQueue(presetRepo, trainingRepo, assetRepo, genaiService, storageService, hub)

	c := cron.New()
	c.AddFunc("@every "+cfg.SyncInterval, syncJob.Refresh)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeGenerateImage, queueW.HandleGenerateImageTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
