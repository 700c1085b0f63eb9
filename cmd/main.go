package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/sbilibin2017/user-crud/docs"
	"github.com/sbilibin2017/user-crud/internal/database"
	"github.com/sbilibin2017/user-crud/internal/handlers"
	"github.com/sbilibin2017/user-crud/internal/logger"
	"github.com/sbilibin2017/user-crud/internal/repositories"
	"github.com/sbilibin2017/user-crud/internal/services"
	"github.com/sbilibin2017/user-crud/internal/session"
	"github.com/sbilibin2017/user-crud/internal/unitofwork"
	"github.com/sbilibin2017/user-crud/internal/views"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title user-crud API
// @version 1.0.0
// @description Server-rendered user management: list, search, create, edit and delete users
// @host localhost:5000
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, logEncoding,
		dbHost, dbPort, dbName, dbUser, dbPassword,
		dbMaxOpenConns, dbMaxIdleConns, dbConnMaxLifetimeSecond,
		secretKey, csrfTTLSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, logEncoding,
		dbHost, dbPort, dbName, dbUser, dbPassword,
		dbMaxOpenConns, dbMaxIdleConns, dbConnMaxLifetimeSecond,
		secretKey, csrfTTLSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, logging, MySQL and session configuration.
// A missing file is not an error; defaults apply.
func parseConfig(path string) (
	appHost, appPort, logLevel, logEncoding string,
	dbHost string, dbPort int, dbName, dbUser, dbPassword string,
	dbMaxOpenConns, dbMaxIdleConns, dbConnMaxLifetimeSecond int,
	secretKey string, csrfTTLSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	atoi := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	appHost = getEnv("APP_HOST", "0.0.0.0")
	appPort = getEnv("PORT", "5000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	logEncoding = getEnv("APP_LOG_ENCODING", "json")

	// MySQL config
	dbHost = getEnv("DB_HOST", "mysql")
	dbName = getEnv("DB_NAME", "cruddb")
	dbUser = getEnv("DB_USER", "cruduser")
	dbPassword = getEnv("DB_PASS", "crudpass")
	if dbPort, err = atoi("DB_PORT", "3306"); err != nil {
		return
	}
	if dbMaxOpenConns, err = atoi("DB_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if dbMaxIdleConns, err = atoi("DB_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}
	if dbConnMaxLifetimeSecond, err = atoi("DB_CONN_MAX_LIFETIME_SECOND", "300"); err != nil {
		return
	}

	// Session config
	secretKey = getEnv("SECRET_KEY", "dev-secret-change-me")
	if csrfTTLSecond, err = atoi("CSRF_TOKEN_TTL_SECOND", "3600"); err != nil {
		return
	}

	return
}

// run initializes the logger and MySQL pool, builds the user service and
// HTTP router, serves until a shutdown signal and then drains connections.
func run(ctx context.Context,
	appHost, appPort, logLevel, logEncoding string,
	dbHost string, dbPort int, dbName, dbUser, dbPassword string,
	dbMaxOpenConns, dbMaxIdleConns, dbConnMaxLifetimeSecond int,
	secretKey string, csrfTTLSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel, logEncoding); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", logLevel)

	// Connect to MySQL
	db, err := database.Open(ctx, database.Config{
		Host:            dbHost,
		Port:            dbPort,
		Name:            dbName,
		User:            dbUser,
		Password:        dbPassword,
		MaxOpenConns:    dbMaxOpenConns,
		MaxIdleConns:    dbMaxIdleConns,
		ConnMaxLifetime: time.Duration(dbConnMaxLifetimeSecond) * time.Second,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// Initialize repositories
	uow := unitofwork.New(db)
	userReadRepo := repositories.NewUserReadRepository(db, unitofwork.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, unitofwork.GetTxFromContext)

	// Initialize services
	userService := services.NewUserService(uow, userReadRepo, userWriteRepo)

	// Initialize sessions and views
	sessions := session.New(
		session.WithSecretKey(secretKey),
		session.WithCSRFTTL(time.Duration(csrfTTLSecond)*time.Second),
	)
	renderer, err := views.New()
	if err != nil {
		return err
	}

	// Setup router
	r := handlers.NewRouter(userService, sessions, renderer, log)

	addr := net.JoinHostPort(appHost, appPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
