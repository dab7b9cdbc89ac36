package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
	"github.com/ordersync/backend/internal/infrastructure/config"
	"github.com/ordersync/backend/internal/infrastructure/ecommerce"
	"github.com/ordersync/backend/internal/infrastructure/logger"
	"github.com/ordersync/backend/internal/infrastructure/normalizer"
	"github.com/ordersync/backend/internal/infrastructure/persistence"
	"github.com/ordersync/backend/internal/infrastructure/scheduler"
	"github.com/ordersync/backend/internal/interfaces/http/handler"
	"github.com/ordersync/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting OrderSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Migrate the canonical schema and seed the status vocabulary
	if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	repos := db.Repositories(persistence.EngineOptions{
		BatchSize:        cfg.Import.BatchSize,
		StagingThreshold: cfg.Import.StagingThreshold,
		DeleteChunkSize:  cfg.Import.DeleteChunkSize,
	}, log)
	if err := repos.SeedVocabulary(context.Background()); err != nil {
		log.Fatal("Failed to seed status vocabulary", zap.Error(err))
	}

	// Wire platform clients and normalizers
	clients := buildClients(cfg, log)
	normalizers := []canonical.OrderNormalizer{
		normalizer.NewShopeeNormalizer(log),
		normalizer.NewLazadaNormalizer(log),
		normalizer.NewTikTokNormalizer(log),
	}

	executor := scheduler.NewImportExecutor(repos, clients, normalizers, cfg.Import.PageSize, log)
	importScheduler := scheduler.NewImportScheduler(executor, cfg.Import, log)

	schedulerStarted := false
	if cfg.Import.Enabled {
		if len(clients) == 0 {
			log.Warn("Import enabled but no platform clients are configured")
		} else if err := importScheduler.Start(); err != nil {
			log.Fatal("Failed to start import scheduler", zap.Error(err))
		} else {
			schedulerStarted = true
		}
	}

	// Build the HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log), logger.Recovery(log))

	systemHandler := handler.NewSystemHandler(db)
	importHandler := handler.NewImportHandler(importScheduler)

	router.NewRouter(engine, router.WithHealthCheck(systemHandler.Health)).
		Register(importHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	if schedulerStarted {
		if err := importScheduler.Stop(); err != nil {
			log.Error("Error stopping import scheduler", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildClients constructs one API client per configured platform, honoring
// the import.platforms allow-list (empty list means all platforms).
func buildClients(cfg *config.Config, log *zap.Logger) []canonical.OrderClient {
	var clients []canonical.OrderClient

	if platformEnabled(cfg.Import.Platforms, canonical.PlatformShopee) {
		if cfg.Platforms.Shopee.Configured() {
			sc := ecommerce.NewShopeeConfig(
				cfg.Platforms.Shopee.PartnerID,
				cfg.Platforms.Shopee.PartnerKey,
				cfg.Platforms.Shopee.AccessToken,
				cfg.Platforms.Shopee.ShopID,
			)
			if cfg.Platforms.Shopee.BaseURL != "" {
				sc.APIBaseURL = cfg.Platforms.Shopee.BaseURL
			}
			client, err := ecommerce.NewShopeeClient(sc)
			if err != nil {
				log.Error("Failed to build Shopee client", zap.Error(err))
			} else {
				clients = append(clients, client)
			}
		} else {
			log.Warn("Shopee credentials missing, platform skipped")
		}
	}

	if platformEnabled(cfg.Import.Platforms, canonical.PlatformLazada) {
		if cfg.Platforms.Lazada.Configured() {
			lc := ecommerce.NewLazadaConfig(
				cfg.Platforms.Lazada.AppKey,
				cfg.Platforms.Lazada.AppSecret,
				cfg.Platforms.Lazada.AccessToken,
			)
			if cfg.Platforms.Lazada.BaseURL != "" {
				lc.APIBaseURL = cfg.Platforms.Lazada.BaseURL
			}
			client, err := ecommerce.NewLazadaClient(lc)
			if err != nil {
				log.Error("Failed to build Lazada client", zap.Error(err))
			} else {
				clients = append(clients, client)
			}
		} else {
			log.Warn("Lazada credentials missing, platform skipped")
		}
	}

	if platformEnabled(cfg.Import.Platforms, canonical.PlatformTikTok) {
		if cfg.Platforms.TikTok.Configured() {
			tc := ecommerce.NewTikTokConfig(
				cfg.Platforms.TikTok.AppKey,
				cfg.Platforms.TikTok.AppSecret,
				cfg.Platforms.TikTok.AccessToken,
				cfg.Platforms.TikTok.ShopID,
			)
			if cfg.Platforms.TikTok.BaseURL != "" {
				tc.APIBaseURL = cfg.Platforms.TikTok.BaseURL
			}
			client, err := ecommerce.NewTikTokClient(tc)
			if err != nil {
				log.Error("Failed to build TikTok client", zap.Error(err))
			} else {
				clients = append(clients, client)
			}
		} else {
			log.Warn("TikTok credentials missing, platform skipped")
		}
	}

	return clients
}

// platformEnabled checks the allow-list, case insensitively
func platformEnabled(allowed []string, platform canonical.Platform) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, code := range allowed {
		if strings.EqualFold(code, platform.String()) {
			return true
		}
	}
	return false
}
