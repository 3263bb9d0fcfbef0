package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	pkgvalidator "github.com/meeting-summarizer-team/meeting-summarizer/pkg/validator"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/handler"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/adapter/repository"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/cache"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/database"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/search"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/telephony"
	httpmw "github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/http/middleware"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/storage"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/callcontrol"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/dialout"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/knowledgebase"
	meetinguse "github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/meeting"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/pipeline"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/usecase/scheduler"
	pkgai "github.com/meeting-summarizer-team/meeting-summarizer/pkg/ai"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/jwt"
)

// @title           Meeting Summarizer API
// @version         1.0
// @description     API for the meeting summarizer: invitation processing, dial-out scheduling, transcript pipeline, and knowledge base retrieval.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis parameter store
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize object storage
	log.Println("🪣 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage, logger)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	aaiClient := aai.NewClient(cfg.Assembly.APIKey)
	transcriptClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	// Initialize telephony and dial-out
	log.Println("📞 Initializing telephony client...")
	telephonyClient := telephony.NewClient(&cfg.Telephony)
	dialService := dialout.NewService(telephonyClient, cfg.Telephony.FromPhoneNumber, cfg.Telephony.MediaApplicationID, logger)

	// Initialize call control
	callHandler := callcontrol.NewHandler(minioClient.Bucket(), logger)

	// Initialize meeting service
	log.Println("📅 Initializing meeting service...")
	meetingService := meetinguse.NewService(meetingRepo, scheduleRepo, groqClient, dialService, minioClient, cfg.Scheduler.GroupName, logger)

	// Initialize knowledge base retrieval. The index name was written to the
	// parameter store at provisioning time; fall back to the configured name
	// when the parameter is absent.
	log.Println("🔎 Initializing knowledge base retrieval...")
	indexClient := search.NewIndexClient(&cfg.Search)
	kbName := fmt.Sprintf("%s-%s", cfg.KnowledgeBase.NamePrefix, cfg.KnowledgeBase.NameSuffix)
	if stored, err := redisClient.GetParameter(context.Background(), "/"+kbName+"/indexName"); err == nil && stored != "" {
		kbName = stored
	}
	retriever := knowledgebase.NewRetriever(groqClient, indexClient, groqClient, kbName, cfg.KnowledgeBase.TopK, logger)

	// Initialize artifact pipeline
	log.Println("🧵 Initializing artifact pipeline...")
	artifactPipeline := pipeline.New(logger)
	artifactPipeline.Register(meetinguse.NewInviteStage(minioClient, meetingService, logger))
	artifactPipeline.Register(pipeline.NewTranscribeStage(minioClient, meetingRepo, aaiClient, cfg.Assembly.WebhookBaseURL, logger))
	artifactPipeline.Register(pipeline.NewAssembleStage(minioClient, logger))
	artifactPipeline.Register(pipeline.NewDiarizeStage(minioClient, meetingRepo, groqClient, logger))
	artifactPipeline.Register(pipeline.NewCleanStage(minioClient, meetingRepo, groqClient, cfg.Pipeline.ChunkCharBudget, logger))
	artifactPipeline.Register(pipeline.NewSummarizeStage(minioClient, meetingRepo, groqClient, logger))
	artifactPipeline.Register(pipeline.NewIngestStage(minioClient, groqClient, indexClient, kbName, logger))

	pipelineCtx, cancelPipeline := context.WithCancel(context.Background())
	defer cancelPipeline()
	go artifactPipeline.Run(pipelineCtx, minioClient.Listen(pipelineCtx))

	// Initialize schedule dispatcher
	log.Println("⏰ Starting schedule dispatcher...")
	dispatcher := scheduler.NewDispatcher(scheduleRepo, dialService, cfg.Scheduler.GroupName, cfg.Scheduler.TickInterval, logger)
	if err := dispatcher.Start(pipelineCtx); err != nil {
		log.Fatalf("Failed to start schedule dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	authEchoMW := httpmw.EchoAuth(jwtManager)

	// Initialize handlers
	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(meetingService, minioClient, logger)
	chatHandler := handler.NewChatHandler(retriever, logger)
	sipWebhook := handler.NewSIPWebhookHandler(callHandler, logger)
	transcribeWebhook := handler.NewTranscribeWebhookHandler(minioClient, transcriptClient, cfg.Assembly.WebhookSecret, logger)

	router := handler.NewRouter(cfg, meetingHandler, chatHandler, sipWebhook, transcribeWebhook, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	cancelPipeline()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
