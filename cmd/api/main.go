package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumely/resume-analyzer/internal/config"
	"resumely/resume-analyzer/internal/handlers"
	"resumely/resume-analyzer/internal/repositories"
	"resumely/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	resumeRepo := repositories.NewResumeRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	validator := services.NewFileValidatorService(cfg.Storage.MaxFileSize)
	pdfParser := services.NewPDFParserService()
	wordParser := services.NewWordParserService()
	extractor := services.NewExtractorService(pdfParser, wordParser, cfg.Analysis.ExtractionTimeout)
	fieldParser := services.NewFieldParserService()
	assembler := services.NewAssemblerService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini. Without an API key the service runs in degraded
	// mode: keyword-heuristic scoring, no vector indexing.
	var (
		geminiService services.GeminiService
		analyzer      services.AnalyzerService
		modelName     string
	)
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		analyzer = services.NewAnalyzerService(geminiService, services.AnalyzerConfig{
			Timeout:         cfg.Analysis.AnalysisTimeout,
			MaxPromptChars:  cfg.Analysis.MaxPromptChars,
			Temperature:     float32(cfg.Analysis.Temperature),
			MaxOutputTokens: int32(cfg.Analysis.MaxOutputTokens),
		})
		modelName = cfg.Gemini.Model
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, using heuristic analysis")
	}

	// Initialize Qdrant
	var vectorIndex services.VectorIndexService
	if geminiService != nil {
		vectorIndex, err = services.NewVectorIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := vectorIndex.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize indexer
	var embedder services.Embedder
	if geminiService != nil {
		embedder = geminiService
	}
	indexer := services.NewIndexerService(
		resumeRepo,
		services.NewTextChunker(),
		embedder,
		vectorIndex,
	)
	log.Println("✅ Indexer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		resumeRepo,
		indexer,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		validator,
		storageService,
		extractor,
		fieldParser,
		analyzer,
		assembler,
		resumeRepo,
		analysisRepo,
		worker,
		modelName,
	)
	historyHandler := handlers.NewHistoryHandler(resumeRepo)
	resultHandler := handlers.NewResultHandler(resumeRepo, storageService, vectorIndex)
	similarHandler := handlers.NewSimilarHandler(resumeRepo, embedder, vectorIndex)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/history", historyHandler.HandleHistory)
	api.Get("/resumes/:id", resultHandler.HandleGetResume)
	api.Delete("/resumes/:id", resultHandler.HandleDeleteResume)
	api.Get("/resumes/:id/similar", similarHandler.HandleSimilar)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/history",
				"GET /api/v1/resumes/:id",
				"DELETE /api/v1/resumes/:id",
				"GET /api/v1/resumes/:id/similar",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
