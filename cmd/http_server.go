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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/auth"
	"github.com/ropereralk/enterprise-directory/internal/company"
	companypg "github.com/ropereralk/enterprise-directory/internal/company/postgres"
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/person"
	personpg "github.com/ropereralk/enterprise-directory/internal/person/postgres"
	"github.com/ropereralk/enterprise-directory/internal/site"
	sitepg "github.com/ropereralk/enterprise-directory/internal/site/postgres"
	"github.com/ropereralk/enterprise-directory/internal/timezone"
	timezonepg "github.com/ropereralk/enterprise-directory/internal/timezone/postgres"
	"github.com/ropereralk/enterprise-directory/internal/transport"
	"github.com/ropereralk/enterprise-directory/internal/transport/rest"
	"github.com/ropereralk/enterprise-directory/internal/user"
	userpg "github.com/ropereralk/enterprise-directory/internal/user/postgres"
	"github.com/ropereralk/enterprise-directory/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Logging.Level)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx pool: %w", err)
	}

	actors := actor.SystemProvider{}

	companyRepo := companypg.NewCompanyRepository(gormDB)
	siteRepo := sitepg.NewSiteRepository(gormDB)
	personRepo := personpg.NewPersonRepository(gormDB)
	userRepo := userpg.NewUserRepository(gormDB)
	timezoneRepo := timezonepg.NewTimeZoneRepository(gormDB)

	companyService := company.NewService(companyRepo, actors, lg)
	siteService := site.NewService(siteRepo, companyRepo, actors, lg)
	personService := person.NewService(personRepo, actors, lg)
	userService := user.NewService(userRepo, actors, config.Security.BCryptCost, lg)
	timezoneService := timezone.NewService(timezoneRepo, lg)

	tokens := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userService, tokens, lg)

	base := transport.NewBaseHandler(lg)
	authHandler := auth.NewHandler(base, authService)
	companyHandler := company.NewHandler(base, companyService)
	siteHandler := site.NewHandler(base, siteService)
	personHandler := person.NewHandler(base, personService)
	userHandler := user.NewHandler(base, userService)
	timezoneHandler := timezone.NewHandler(base, timezoneService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, companyHandler, siteHandler, personHandler, userHandler, timezoneHandler, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
