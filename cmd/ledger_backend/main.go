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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/farm_ledger_app/internal/adapters/amqp"
	gsheets "github.com/SscSPs/farm_ledger_app/internal/adapters/sheets/google"
	memsheets "github.com/SscSPs/farm_ledger_app/internal/adapters/sheets/memory"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/handlers"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/platform/migrations"
	"github.com/SscSPs/farm_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/SscSPs/farm_ledger_app/pkg/database"
)

// @title Farm Ledger API
// @version 1.0
// @description Cash book, reports and exports for a small fish farm.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...")
	if err := migrations.Up(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			logger.Error("Failed to register validators", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var publisher portssvc.AuditPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
	} else {
		logger.Info("Audit publishing disabled - no AMQP_URL provided")
	}

	sheets, err := newSpreadsheetWriter(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize spreadsheet writer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), publisher, sheets)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newSpreadsheetWriter writes exports to Google Sheets when a spreadsheet
// is configured and keeps them in memory otherwise.
func newSpreadsheetWriter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.SpreadsheetWriter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		logger.Info("Google Sheets disabled - exports are kept in memory")
		return memsheets.New(), nil
	}
	w, err := gsheets.NewWriter(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleServiceAccountJSON, cfg.GoogleServiceAccountFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets writer initialized", slog.String("spreadsheet_id", cfg.GoogleSpreadsheetID))
	return w, nil
}
