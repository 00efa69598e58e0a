package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Molmash/molmash/internal/auth"
	"github.com/Molmash/molmash/internal/config"
	"github.com/Molmash/molmash/internal/event"
	handler "github.com/Molmash/molmash/internal/handler/http"
	"github.com/Molmash/molmash/internal/mailer"
	mailermock "github.com/Molmash/molmash/internal/mailer/mock"
	"github.com/Molmash/molmash/internal/repository/postgres"
	"github.com/Molmash/molmash/internal/service"
	"github.com/Molmash/molmash/internal/storage/local"
	"github.com/Molmash/molmash/migrations"
	"github.com/Molmash/molmash/pkg/database"
	"github.com/Molmash/molmash/pkg/health"
	pkgkafka "github.com/Molmash/molmash/pkg/kafka"
	"github.com/Molmash/molmash/pkg/tracing"
)

// App wires together all dependencies and runs the backend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "molmash",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Media storage for uploaded images.
	store, err := local.New(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Outbound mail. Without an SMTP relay configured, mail is logged
	// instead of delivered.
	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		sender = mailermock.NewMockSender(logger)
		logger.Warn("SMTP_HOST not set, outgoing mail will only be logged")
	}

	// Build the dependency graph.
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessExpiry(), cfg.RefreshExpiry())
	accountRepo := postgres.NewAccountRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	blogRepo := postgres.NewBlogRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	eventProducer := event.NewProducer(producer, logger)

	authService := service.NewAuthService(accountRepo, tokenRepo, issuer, eventProducer, logger)
	blogService := service.NewBlogService(blogRepo, store, logger)
	projectService := service.NewProjectService(projectRepo, store, logger)
	mailService := service.NewMailService(subscriptionRepo, eventProducer, logger)
	noteService := service.NewNoteService(sender, eventProducer, cfg.EmailTo, logger)

	// Provision the initial admin account when the store is empty.
	if err := authService.EnsureInitialAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure initial admin: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		authService,
		blogService,
		projectService,
		mailService,
		noteService,
		auth.NewGate(),
		healthHandler,
		logger,
		handler.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		handler.MediaConfig{
			Dir:     cfg.MediaDir,
			BaseURL: cfg.MediaBaseURL,
		},
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 4. Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
