package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/audit"
	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/config"
	"github.com/IslamGh2004/sawtlib/internal/database"
	auditrepo "github.com/IslamGh2004/sawtlib/internal/database/audit"
	"github.com/IslamGh2004/sawtlib/internal/database/authors"
	"github.com/IslamGh2004/sawtlib/internal/database/books"
	"github.com/IslamGh2004/sawtlib/internal/database/categories"
	"github.com/IslamGh2004/sawtlib/internal/database/favorites"
	"github.com/IslamGh2004/sawtlib/internal/database/notifications"
	"github.com/IslamGh2004/sawtlib/internal/database/progress"
	"github.com/IslamGh2004/sawtlib/internal/database/settings"
	"github.com/IslamGh2004/sawtlib/internal/database/users"
	"github.com/IslamGh2004/sawtlib/internal/demo"
	"github.com/IslamGh2004/sawtlib/internal/exporters"
	httpcontrollers "github.com/IslamGh2004/sawtlib/internal/http"
	"github.com/IslamGh2004/sawtlib/internal/scheduler"
	"github.com/IslamGh2004/sawtlib/internal/services"
	"github.com/IslamGh2004/sawtlib/internal/storage"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains it
// within the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown requested, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the full application and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting sawtlib v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	favoriteRepo := favorites.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	notificationRepo := notifications.NewRepository(db.DB)
	settingRepo := settings.NewRepository(db.DB)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	statsService := services.NewStatsService(bookRepo, categoryRepo, authorRepo, userRepo, favoriteRepo, progressRepo)
	exporter := exporters.NewCSVExporter(bookRepo, userRepo, categoryRepo, authorRepo, progressRepo)

	mediaStore, err := storage.NewStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	log.Printf("Media storage backend: %s", storageBackendName(cfg.Storage.Backend))

	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	csrfSecret := resolveCSRFSecret(cfg.Auth.SessionSecret)

	// Local storage serves files straight from the media directory;
	// the S3 backend returns absolute URLs instead.
	mediaDir := ""
	if cfg.Storage.Backend == config.StorageBackendLocal || cfg.Storage.Backend == "" {
		mediaDir = cfg.Storage.MediaDir
	}

	demoMode := demo.NewMiddleware(cfg.Global.DemoMode)
	if demoMode.IsEnabled() {
		log.Printf("Demo mode active, admin write operations are disabled")
	}

	router := httpcontrollers.NewRouter(httpcontrollers.RouterConfig{
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		DemoMode:       demoMode,

		Books:         bookRepo,
		Categories:    categoryRepo,
		Authors:       authorRepo,
		Users:         userRepo,
		Favorites:     favoriteRepo,
		Progress:      progressRepo,
		Notifications: notificationRepo,
		Settings:      settingRepo,
		Stats:         statsService,
		Auditor:       auditService,

		MediaStore: mediaStore,
		MediaDir:   mediaDir,
		Exporter:   exporter,

		Version: version,
	})

	retention := scheduler.NewAuditRetentionScheduler(auditService, cfg.Audit.RetentionDays, cfg.Audit.CleanupSchedule)
	if err := retention.Start(); err != nil {
		log.Fatalf("Failed to start audit retention scheduler: %v", err)
	}

	Serve(router, cfg, func(ctx context.Context) {
		retention.Stop()
	})
}

// resolveCSRFSecret decodes the configured secret, or generates an
// ephemeral one when none is set.
func resolveCSRFSecret(configured string) []byte {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret
		}
		// Not hex, use as raw bytes.
		return []byte(configured)
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	decoded, _ := hex.DecodeString(secret)
	return decoded
}

func storageBackendName(backend config.StorageBackend) string {
	if backend == "" {
		return string(config.StorageBackendLocal)
	}
	return string(backend)
}
