package main

import (
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
	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/api/handlers"
	"github.com/tradeposthq/tradepost/internal/api/middleware"
	job "github.com/tradeposthq/tradepost/internal/jobs"
	"github.com/tradeposthq/tradepost/internal/queue"
	"github.com/tradeposthq/tradepost/internal/repository"
	"github.com/tradeposthq/tradepost/internal/service"
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
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key, X-Hook-Secret",
		MaxAge:       3600,
	}))

	companyRepo := repository.NewCompanyRepository(db)
	mediaItemRepo := repository.NewMediaItemRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	postRepo := repository.NewScheduledPostRepository(db)
	resultRepo := repository.NewPublishResultRepository(db)
	connectionRepo := repository.NewPlatformConnectionRepository(db)

	r2Service := service.NewR2Service(*cfg)
	captionService := service.NewCaptionService(*cfg)
	graphicService := service.NewGraphicService(*cfg, reviewRepo, r2Service)
	selector := service.NewContentSelector(*cfg, mediaItemRepo, reviewRepo)
	composer := service.NewPostComposer(*cfg, postRepo, mediaItemRepo, reviewRepo, selector, captionService, graphicService)
	filler := service.NewQueueFiller(companyRepo, postRepo, composer)

	adapters := []service.PlatformAdapter{
		service.NewInstagramAdapter(*cfg),
		service.NewFacebookAdapter(*cfg),
		service.NewGBPAdapter(*cfg),
	}
	publisher := service.NewPublisher(postRepo, mediaItemRepo, reviewRepo, connectionRepo, resultRepo, adapters)
	processor := service.NewDuePostProcessor(*cfg, postRepo, publisher)

	postService := service.NewPostService(postRepo, resultRepo)
	companyService := service.NewCompanyService(*cfg, companyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	hooks := handlers.NewHooksHandler(client)
	hookGroup := app.Group("/hooks")
	hookGroup.Use(authMiddleware.HookMiddleware())
	hookGroup.Post("/media/uploaded", hooks.MediaUploaded)
	hookGroup.Post("/reviews/graphic", hooks.ReviewGraphicReady)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(postService, client)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/failed", post.ListFailedPosts)
	api.Get("/posts/results", post.PostResults)
	api.Post("/posts/skip", post.SkipPost)
	api.Post("/posts/retry", post.RetryPost)

	settings := handlers.NewSettingsHandler(companyService)
	api.Get("/settings/info", settings.GetSettings)
	api.Post("/settings/update", settings.UpdateSettings)

	// cron jobs
	duePostJob := job.NewDuePostJob(processor)
	queueFillJob := job.NewQueueFillJob(companyRepo, client)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", duePostJob.Run)
	c.AddFunc("@every 06h00m00s", queueFillJob.Run)
	c.Start()

	queueW := queue.NewQueue(filler, publisher)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeFillQueue, queueW.HandleFillQueueTask)
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

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
