package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"github.com/fadilmartias/ai-recruiter/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/ai-recruiter/internal/logger"
	"github.com/fadilmartias/ai-recruiter/internal/metrics"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog, err := applogger.New(appConfig.Env)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer applogger.Sync(zlog)

	db, err := config.ConnectDB(&model.Recruiter{}, &model.Candidate{}, &model.Job{}, &model.Asset{})
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	candidateRepo := repository.NewCandidateRepository(db)
	recruiterRepo := repository.NewRecruiterRepository(db)
	jobRepo := repository.NewJobRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	completer, err := service.NewCompleter(ctx, config.LoadLLMConfig(), zlog)
	if err != nil {
		zlog.Fatal("ranking model", zap.Error(err))
	}

	// postings are stored without embeddings when Gemini is not configured
	var embedder usecase.Embedder
	if gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), "", zlog); err != nil {
		zlog.Warn("embeddings disabled", zap.Error(err))
	} else {
		embedder = gemini
	}

	mailer := service.NewMailService(config.LoadSMTPConfig(), appConfig.IsProduction(), zlog)

	redisConfig := config.LoadRedisConfig()
	events := service.NewEventService(nil, redisConfig.Channel, zlog)
	if redisConfig.Enabled() {
		rdb, err := service.NewRedisClient(ctx, redisConfig.URL)
		if err != nil {
			zlog.Warn("candidate events disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			events = service.NewEventService(rdb, redisConfig.Channel, zlog)
		}
	}

	m := metrics.New()

	shortlistUC := usecase.NewShortlistUsecase(candidateRepo, jobRepo, completer, embedder, mailer, events, config.LoadQuizConfig().BaseURL, m, zlog)
	quizUC := usecase.NewQuizUsecase(candidateRepo, mailer, events, m, zlog)
	recruiterUC := usecase.NewRecruiterUsecase(recruiterRepo, zlog)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, mailer, m, zlog)
	jobUC := usecase.NewJobUsecase(jobRepo, embedder)
	assetUC := usecase.NewAssetUsecase(assetRepo)

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" || code == fiber.StatusInternalServerError {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, time.Minute))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	sessions := middleware.NewSessions(appConfig.SessionTTL, appConfig.IsProduction())
	app.Use(sessions.Attach())

	handler.NewRecruiterHandler(recruiterUC, sessions).RegisterRoutes(app)
	handler.NewShortlistHandler(shortlistUC).RegisterRoutes(app)
	handler.NewCandidateHandler(candidateUC).RegisterRoutes(app)
	handler.NewQuizHandler(quizUC, sessions).RegisterRoutes(app)
	handler.NewJobHandler(jobUC).RegisterRoutes(app)
	handler.NewAssetHandler(assetUC).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			zlog.Debug("runtime", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("server running",
		zap.String("port", appConfig.Port),
		zap.String("provider", completer.Provider()),
		zap.Bool("embeddings", embedder != nil),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("listen", zap.Error(err))
	}
}
