package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	auditRepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/genres"
	"github.com/mrlokans/bookstore/internal/database/shelves"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// ErrPendingMigrations is returned by PrepareSchema when the schema is
// behind and automatic migration is off.
var ErrPendingMigrations = errors.New("database has pending migrations")

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// OpenDatabase connects to the configured store without touching the schema.
func OpenDatabase(cfg *config.Config) (*database.Database, error) {
	dsn, err := cfg.Database.ConnectionString()
	if err != nil {
		return nil, err
	}
	return database.NewDatabase(database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      dsn,
		LogLevel: cfg.Database.GormLogLevel(),
	})
}

// PrepareSchema applies pending migrations when autoMigrate is set and
// otherwise refuses to continue with an outdated schema.
func PrepareSchema(db *database.Database, autoMigrate bool) error {
	pending, err := db.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	if !autoMigrate {
		return fmt.Errorf("%w: %d not applied, run 'bookstore migrate' or set DATABASE_AUTO_MIGRATE=true",
			ErrPendingMigrations, len(pending))
	}

	applied, err := db.Migrate()
	if err != nil {
		return err
	}
	log.Printf("Applied %d migration(s)", applied)
	return nil
}

// NewHandler wraps the router with CORS handling for the configured origins.
func NewHandler(router http.Handler, cfg *config.Config) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", http_controllers.RequestIDHeader},
		ExposedHeaders: []string{http_controllers.RequestIDHeader},
		MaxAge:         300,
	})(router)
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookstore v%s", version)

	db, err := OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := PrepareSchema(db, cfg.Database.AutoMigrate); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))

	routerCfg := http_controllers.RouterConfig{
		BookStore:          books.NewRepository(db.DB),
		GenreStore:         genres.NewRepository(db.DB),
		ShelfStore:         shelves.NewRepository(db.DB),
		Health:             db,
		AuditLogger:        auditService,
		AuditReader:        auditService,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		Version:            version,
	}

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	// Task queue and cleanup scheduler
	var taskClient *tasks.Client
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))
		go taskClient.Start(bgCtx)

		routerCfg.AuditCleanup = taskClient
		routerCfg.TaskStatus = taskClient

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, scheduler.AuditCleanupConfig{
			Enabled:       cfg.Audit.CleanupEnabled,
			Schedule:      cfg.Audit.CleanupSchedule,
			RetentionDays: cfg.Audit.RetentionDays,
		})
		if err := cleanupScheduler.Start(bgCtx); err != nil {
			log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
		}
	} else {
		log.Printf("Task queue disabled; audit cleanup endpoint will return 503")
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := http_controllers.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limiter.StartCleanup(bgCtx, time.Minute, 10*time.Minute)
		routerCfg.RateLimiter = limiter
		log.Printf("Rate limiting enabled: %.2f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancelBackground()
		auditService.Wait()
	}

	Serve(NewHandler(router, cfg), cfg, onShutdown)
}
