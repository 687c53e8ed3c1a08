package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apontae/timesheet-management/internal"
	"github.com/apontae/timesheet-management/internal/approval"
	"github.com/apontae/timesheet-management/internal/auth"
	authPostgres "github.com/apontae/timesheet-management/internal/auth/postgres"
	"github.com/apontae/timesheet-management/internal/cache"
	"github.com/apontae/timesheet-management/internal/catalog"
	catalogPostgres "github.com/apontae/timesheet-management/internal/catalog/postgres"
	"github.com/apontae/timesheet-management/internal/core/events"
	"github.com/apontae/timesheet-management/internal/timeentry"
	timeentryPostgres "github.com/apontae/timesheet-management/internal/timeentry/postgres"
	"github.com/apontae/timesheet-management/internal/transport/rest"
	"github.com/apontae/timesheet-management/internal/user"
	userPostgres "github.com/apontae/timesheet-management/internal/user/postgres"
	"github.com/apontae/timesheet-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	Logger          *slog.Logger
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	EntryHandler    *timeentry.Handler
	ApprovalHandler *approval.Handler
	CatalogHandler  *catalog.Handler
	Counts          *approval.CountService
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	pollCtx, stopPoller := context.WithCancel(context.Background())
	deps.Counts.Start(pollCtx)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		stopPoller()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopPoller()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.EntryHandler,
		deps.ApprovalHandler,
		deps.CatalogHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// Event bus drives cache invalidation on every entry mutation.
	bus := events.NewEventBus(appLogger)
	store := cache.NewLRUStore(config.Approval.CacheSize, config.Approval.StaleTimeOrDefault())

	catalogRepo := catalogPostgres.NewCatalogRepository(gormDB)
	catalogService := catalog.NewService(catalogRepo, appLogger)
	catalogHandler := catalog.NewHandler(catalogService)

	entryRepo := timeentryPostgres.NewTimeEntryRepository(gormDB)
	entryService := timeentry.NewService(entryRepo, catalogService, bus, appLogger)
	entryHandler := timeentry.NewHandler(entryService)

	countService := approval.NewCountService(
		entryService,
		config.Approval.PollIntervalOrDefault(),
		config.Approval.StaleTimeOrDefault(),
		appLogger,
	)
	cache.SubscribeInvalidation(bus, store, countService, appLogger)

	authRepo := authPostgres.NewAuthRepository(gormDB)
	authService := auth.NewService(authRepo, config.Security.JWTSecret, config.Security.AccessTokenDuration, appLogger)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, appLogger)
	userHandler := user.NewHandler(userService)

	approvalService := approval.NewService(entryService, store, appLogger)
	batchProcessor := approval.NewBatchProcessor(entryService, store, countService, appLogger)
	approvalHandler := approval.NewHandler(approvalService, batchProcessor, countService)

	return &Dependencies{
		Config:          config,
		Logger:          appLogger,
		DB:              db,
		Router:          chi.NewRouter(),
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		EntryHandler:    entryHandler,
		ApprovalHandler: approvalHandler,
		CatalogHandler:  catalogHandler,
		Counts:          countService,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
