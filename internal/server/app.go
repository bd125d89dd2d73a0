// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/imagetags/internal/logging"
	"github.com/dmitrijs2005/imagetags/internal/server/auth"
	"github.com/dmitrijs2005/imagetags/internal/server/config"
	"github.com/dmitrijs2005/imagetags/internal/server/httpapi"
	"github.com/dmitrijs2005/imagetags/internal/server/metrics"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/imagetags/internal/server/services"
	"github.com/dmitrijs2005/imagetags/internal/server/storage"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

// parseLevel maps a config level name onto slog; unknown names mean info.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, parseLevel(c.LogLevel))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher)
	if err != nil {
		db.Close()
		return nil, err
	}

	tokens, err := auth.NewTokenManager(c.SecretKey, c.SigningAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		db.Close()
		return nil, err
	}

	store, err := storage.NewS3Store(ctx, storage.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewHandler(httpapi.Deps{
		Accounts:      services.NewAccountService(db, rm, hasher, tokens),
		Images:        services.NewImageService(db, rm),
		Uploads:       services.NewUploadService(store, c.MaxUploadSize),
		DB:            db,
		Metrics:       metrics.New(),
		Logger:        logger,
		MaxUploadSize: c.MaxUploadSize,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, handler.NewRouter()),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or the server fails, then
// closes the database pool.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
