package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bibbank/vaddi/internal/application/usecase"
	"github.com/bibbank/vaddi/internal/domain/port"
	"github.com/bibbank/vaddi/internal/domain/service"
	"github.com/bibbank/vaddi/internal/infrastructure/cache"
	"github.com/bibbank/vaddi/internal/infrastructure/config"
	"github.com/bibbank/vaddi/internal/infrastructure/kafka"
	"github.com/bibbank/vaddi/internal/infrastructure/persistence/memory"
	pgRepo "github.com/bibbank/vaddi/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/vaddi/internal/infrastructure/scheduler"
	"github.com/bibbank/vaddi/internal/infrastructure/telemetry"
	grpcPresentation "github.com/bibbank/vaddi/internal/presentation/grpc"
	"github.com/bibbank/vaddi/internal/presentation/rest"
	"github.com/bibbank/vaddi/pkg/auth"
	pkgkafka "github.com/bibbank/vaddi/pkg/kafka"
	"github.com/bibbank/vaddi/pkg/money"
	"github.com/bibbank/vaddi/pkg/observability"
	pkgpostgres "github.com/bibbank/vaddi/pkg/postgres"
	"github.com/bibbank/vaddi/pkg/tlsutil"
)

func main() {
	genCertDir := flag.String("gen-self-signed", "", "write a self-signed certificate pair into `dir` and exit")
	certHosts := flag.String("cert-hosts", "localhost,127.0.0.1", "comma-separated hosts for -gen-self-signed")
	flag.Parse()

	if *genCertDir != "" {
		certFile, keyFile, err := tlsutil.WriteSelfSigned(strings.Split(*certHosts, ","), *genCertDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "generate certificate:", err)
			os.Exit(1)
		}
		fmt.Printf("TLS_CERT_FILE=%s\nTLS_KEY_FILE=%s\n", certFile, keyFile)
		return
	}

	if err := run(); err != nil {
		slog.Error("vaddi exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting vaddi",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"day_count", cfg.Calculator.DayCountConvention,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    true,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort
	metrics, err := telemetry.NewMetricsRecorder(meterProvider.Meter(telemetry.MeterName))
	if err != nil {
		return err
	}

	// Calculation history.
	var (
		repo   port.CalculationRepository
		checks = map[string]rest.ReadinessCheck{}
	)
	if cfg.DB.Enabled {
		dbCfg := pkgpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: int32(cfg.DB.MaxConns),
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
		dbCancel()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("connected to database")

		if err := pkgpostgres.RunMigrations(dbCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		repo = pgRepo.NewCalculationRepo(pool)
		checks["database"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	} else {
		logger.Warn("database disabled, calculation history is kept in memory")
		repo = memory.NewCalculationRepo()
	}

	// Event publishing.
	var publisher port.EventPublisher
	if cfg.KafkaEnabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
			TLS:           cfg.Kafka.TLS,
		})
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		publisher = kafka.NewLogEventPublisher(logger)
	}

	// Resubmission cache.
	var calcCache port.CalculationCache = cache.Noop{}
	if cfg.CacheEnabled() {
		redisCtx, redisCancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := cache.NewRedisClient(redisCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		redisCancel()
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", "error", err)
		} else {
			defer func() { _ = client.Close() }() //nolint:errcheck // best-effort
			calcCache = cache.NewRedisCache(client, cfg.Redis.TTL)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	// Domain services.
	convention, err := service.ParseDayCountConvention(cfg.Calculator.DayCountConvention)
	if err != nil {
		return err
	}
	currency, err := money.NewCurrency(strings.ToUpper(cfg.Calculator.DefaultCurrency))
	if err != nil {
		return fmt.Errorf("default currency: %w", err)
	}

	// Wire use cases.
	calculateUC := usecase.NewCalculateInterestUseCase(
		repo, publisher, calcCache, metrics,
		service.NewDurationResolver(convention),
		service.NewInterestEngine(),
		currency,
		logger,
	)
	getCalculationUC := usecase.NewGetCalculationUseCase(repo)
	purgeUC := usecase.NewPurgeHistoryUseCase(repo, publisher, logger)

	// Retention.
	var retention *scheduler.RetentionScheduler
	if cfg.RetentionEnabled() {
		retention = scheduler.NewRetentionScheduler(purgeUC, cfg.Retention.Cron, cfg.Retention.Days, logger)
		if err := retention.Start(); err != nil {
			return err
		}
	}

	// Authentication.
	var jwtSvc *auth.JWTService
	jwtCfg := auth.JWTConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer}
	if cfg.Auth.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKeyFile)
		if err != nil {
			return fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = pem
	}
	if jwtCfg.Enabled() {
		if jwtSvc, err = auth.NewJWTService(jwtCfg); err != nil {
			return fmt.Errorf("initialize JWT service: %w", err)
		}
	} else {
		logger.Warn("JWT not configured, API is unauthenticated")
	}

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewCalculatorHandler(calculateUC, getCalculationUC),
		logger,
		grpcPresentation.ServerOptions{
			JWT:         jwtSvc,
			TLSCertFile: cfg.TLS.CertFile,
			TLSKeyFile:  cfg.TLS.KeyFile,
			Reflection:  cfg.GRPCReflection,
		},
	)
	if err != nil {
		return err
	}

	// HTTP server.
	var rateLimiter *rest.RateLimiter
	if cfg.RateLimitEnabled() {
		rateLimiter = rest.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute, logger)
		defer rateLimiter.Stop()
	} else {
		logger.Info("rate limiting disabled")
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterDeps{
			Calculations: rest.NewCalculationHandler(calculateUC, getCalculationUC, logger),
			Health:       rest.NewHealthHandler(cfg.ServiceName, checks, logger),
			Metrics:      metricsHandler,
			RateLimiter:  rateLimiter,
			JWT:          jwtSvc,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLSEnabled() {
		tlsCfg, err := tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load HTTP TLS config: %w", err)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort, "tls", cfg.TLSEnabled())
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if retention != nil {
		retention.Stop(shutdownCtx)
	}
	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("vaddi stopped")
	return runErr
}
