package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveytoolkit/internal/cache"
	"surveytoolkit/internal/config"
	"surveytoolkit/internal/logging"
	"surveytoolkit/internal/repository"
	"surveytoolkit/internal/service"
	"surveytoolkit/internal/stopwords"
	"surveytoolkit/internal/transport/rest"
	"surveytoolkit/internal/transport/ws"
)

// @title Survey Toolkit API
// @version 1.0
// @description Stores SurveyJS definitions and results and derives summaries, tables and variable metadata
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()
	logger := logging.Init(cfg.Log)
	ctx := context.Background()

	logger.Info("analysis config",
		"defaultLanguage", cfg.Analysis.DefaultLanguage,
		"otherText", cfg.Analysis.Parser.DefaultOtherText,
		"noneText", cfg.Analysis.Parser.DefaultNoneText,
		"summaryCacheTtl", cfg.Analysis.SummaryCacheTTL.String(),
		"progressEvery", cfg.Analysis.ProgressEvery,
	)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		fatal("failed to connect to MongoDB", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		fatal("failed to ping MongoDB", err)
	}
	logger.Info("connected to MongoDB", "db", cfg.MongoDB)

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		fatal("failed to create indexes", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		fatal("failed to ping Redis", err)
	}
	logger.Info("connected to Redis", "addr", cfg.RedisAddr)

	stopWords, err := stopwords.NewEmbedded()
	if err != nil {
		fatal("failed to load stop words", err)
	}
	logger.Info("stop words loaded", "languages", stopWords.Languages())

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	resultRepo := repository.NewResultRepo(db)

	// Initialize caches
	summaryCache := cache.NewSummaryCache(rdb, cfg.Analysis.SummaryCacheTTL)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	surveySvc := service.NewSurveyService(surveyRepo, resultRepo, summaryCache, cfg.Analysis)
	analysisSvc := service.NewAnalysisService(surveySvc, summaryCache, stopWords, cfg.Analysis)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	surveySvc.SetBroadcaster(wsHub)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		SurveyService:   surveySvc,
		AnalysisService: analysisSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort, "hostUsername", cfg.Auth.HostUsername)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("listen failed", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("server forced to shutdown", err)
	}

	logger.Info("server exited")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
