// Package server assembles the notes server: configuration, storage,
// services and the HTTP, gRPC health and export-consumer processes.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/notesapp/internal/cryptox"
	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/dmitrijs2005/notesapp/internal/server/auth"
	"github.com/dmitrijs2005/notesapp/internal/server/config"
	"github.com/dmitrijs2005/notesapp/internal/server/exports"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notesapp/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notesapp/internal/server/services"
	"github.com/dmitrijs2005/notesapp/internal/telemetry"
	"github.com/dmitrijs2005/notesapp/internal/timex"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/notesapp/internal/server/grpc"
	hs "github.com/dmitrijs2005/notesapp/internal/server/http"
)

// Seams for tests.
var (
	openDB               = repomanager.OpenPostgres
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	tokens   *auth.TokenManager
	handlers *hs.Handlers
	consumer *exports.Consumer

	shutdownTelemetry func(context.Context) error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: c.OTelServiceName,
		Endpoint:    c.OTelEndpoint,
		SampleRatio: c.OTelSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	app := &App{config: c, logger: logger, shutdownTelemetry: shutdownTelemetry}
	if err := app.init(ctx); err != nil {
		app.Close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		AccessKey:  []byte(c.AccessTokenKey),
		RefreshKey: []byte(c.RefreshTokenKey),
		AccessTTL:  c.AccessTokenValidityDuration,
		RefreshTTL: c.RefreshTokenValidityDuration,
	})
	if err != nil {
		return fmt.Errorf("token manager init error: %w", err)
	}
	app.tokens = tokens

	tokenRepo, err := app.refreshTokenRepository(ctx, rm)
	if err != nil {
		return err
	}

	hasher := cryptox.NewPasswordHasher(c.BcryptCost)
	access := services.NewNoteAuthorizer(
		rm.Notes(db),
		services.NewCollaborationChecker(rm.Collaborations(db)),
		app.logger.With("module", "authorizer"),
	)

	noteService := services.NewNoteService(db, rm, access, timex.SystemClock)

	app.handlers = &hs.Handlers{
		Users: services.NewUserService(db, rm, hasher),
		Auth: services.NewAuthService(
			services.NewCredentialVerifier(rm.Users(db), hasher),
			tokens,
			services.NewRefreshTokenStore(tokenRepo),
			app.logger.With("module", "auth"),
		),
		Notes:          noteService,
		Collaborations: services.NewCollaborationService(db, rm, access),
	}

	if c.ExportsEnabled {
		if err := app.initExports(ctx, noteService); err != nil {
			return err
		}
	}
	return nil
}

// refreshTokenRepository picks the refresh-token backend from config.
func (app *App) refreshTokenRepository(ctx context.Context, rm repomanager.RepositoryManager) (refreshtokens.Repository, error) {
	c := app.config
	if c.TokenStore != config.TokenStoreRedis {
		return rm.RefreshTokens(app.db), nil
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	if err := app.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}
	return refreshtokens.NewRedisRepository(app.redis, c.RedisPrefix, c.RefreshTokenValidityDuration), nil
}

func (app *App) initExports(ctx context.Context, notes exports.NotesLister) error {
	c := app.config

	storage, err := exports.NewS3Storage(ctx, exports.StorageConfig{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return fmt.Errorf("s3 init error: %w", err)
	}

	mailer := exports.NewSMTPMailer(exports.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	})

	app.handlers.Exports = services.NewExportService(exports.NewPublisher(c.RabbitMQURL))
	app.consumer = exports.NewConsumer(c.RabbitMQURL, notes, storage, mailer, app.logger)
	return nil
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

// runProcess runs fn and cancels the whole app when it fails.
func (app *App) runProcess(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "process failed", "process", name, "err", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	httpServer := hs.NewServer(app.config.EndpointAddrHTTP, app.logger, app.handlers, app.tokens)
	healthServer := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runProcess(ctx, cancelFunc, "http", httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runProcess(ctx, cancelFunc, "grpc", healthServer.Run)
	}()

	if app.consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runProcess(ctx, cancelFunc, "export-consumer", app.consumer.Run)
		}()
	}

	wg.Wait()

	app.Close(context.Background())
	app.logger.Info(ctx, "App stopped")
}

// Close releases external resources. It is safe to call on a partially
// initialised App.
func (app *App) Close(ctx context.Context) {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	if app.shutdownTelemetry != nil {
		errs = append(errs, app.shutdownTelemetry(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "shutdown", "err", err)
	}
}
