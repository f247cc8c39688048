package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/chxlky/trello-bookmark/api"
	"github.com/chxlky/trello-bookmark/database"
	"github.com/chxlky/trello-bookmark/integrations"
	"github.com/chxlky/trello-bookmark/internal/config"
	"github.com/chxlky/trello-bookmark/internal/history"
	"github.com/chxlky/trello-bookmark/internal/popup"
	"github.com/chxlky/trello-bookmark/internal/settings"
	"github.com/chxlky/trello-bookmark/internal/status"
	"github.com/chxlky/trello-bookmark/internal/tab"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() *zap.Logger {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := zapConfig.Build()
	return logger
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load(".")
	if err != nil {
		zap.L().Fatal("Error reading config file", zap.Error(err))
	}

	db, err := database.Init(cfg.Database.Path)
	if err != nil {
		zap.L().Fatal("Failed to initialise database", zap.Error(err))
	}
	sqlDB, _ := db.DB()

	var store settings.Store
	switch cfg.Settings.Backend {
	case config.BackendKeyring:
		store = settings.NewKeyringStore(settings.KeyringService)
	default:
		store = settings.NewSQLStore(db)
	}
	zap.L().Info("Using settings backend", zap.String("backend", cfg.Settings.Backend))

	bookmarks := history.NewStore(db)
	controller := popup.NewController(
		store,
		tab.NewDevToolsResolver(cfg.Browser.DevToolsURL, cfg.Browser.Timeout),
		integrations.NewTrelloClient(cfg.Trello.BaseURL, cfg.Trello.Timeout),
		bookmarks,
		status.NewReporter(cfg.Popup.StatusClearAfter, cfg.Popup.Debug),
	)
	controller.Init(context.Background())

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	apiHandler := &api.Handler{
		Popup:     controller,
		Bookmarks: bookmarks,
	}
	apiHandler.Register(router.Group("/api"))

	srv := &http.Server{
		Addr:    "127.0.0.1:" + cfg.Server.Port,
		Handler: router,
	}

	zap.L().Info("Starting popup host", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}

		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				zap.L().Error("Error closing database", zap.Error(err))
			} else {
				zap.L().Info("Database connection closed.")
			}
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// a second signal exits immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
