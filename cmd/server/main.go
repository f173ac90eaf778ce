package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/application/assistant"
	identityapp "github.com/lawai/backend/internal/application/identity"
	legalapp "github.com/lawai/backend/internal/application/legal"
	"github.com/lawai/backend/internal/infrastructure/ai"
	"github.com/lawai/backend/internal/infrastructure/auth"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/logger"
	"github.com/lawai/backend/internal/infrastructure/migration"
	"github.com/lawai/backend/internal/infrastructure/persistence"
	"github.com/lawai/backend/internal/infrastructure/printing"
	"github.com/lawai/backend/internal/infrastructure/storage"
	"github.com/lawai/backend/internal/infrastructure/telemetry"
	"github.com/lawai/backend/internal/interfaces/http/handler"
	"github.com/lawai/backend/internal/interfaces/http/middleware"
	"github.com/lawai/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/lawai/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			LawAI API
//	@version		1.0
//	@description	Backend da plataforma LawAI: clientes, processos, prazos, documentos e assistente jurídico.

//	@contact.name	API Support
//	@contact.url	https://github.com/lawai/backend

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}

	// Bootstrap logger for the telemetry providers; replaced once the OTLP
	// log bridge is known.
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	log, err := logger.New(logCfg, logProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting LawAI backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		BasicAuthUser:   cfg.Profiling.BasicAuthUser,
		BasicAuthPass:   cfg.Profiling.BasicAuthPass,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
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

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	caseRepo := persistence.NewGormCaseRepository(db.DB)
	deadlineRepo := persistence.NewGormDeadlineRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)

	// Token revocation
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Token blacklist kept in memory")
	}

	// Document files
	var files legalapp.FileStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3FileStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err), zap.String("bucket", s3Storage.Bucket()))
		}
		files = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", s3Storage.Bucket()))
	} else {
		files = storage.NewMemoryFileStorage()
		log.Warn("Object storage disabled, document files are kept in memory")
	}

	// PDF export
	var renderer legalapp.DocumentRenderer
	if cfg.Printing.Enabled {
		pdf, err := printing.NewChromedpRenderer(cfg.Printing, log)
		if err != nil {
			log.Fatal("Failed to start PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = pdf.Close()
		}()
		renderer = printing.NewDocumentRenderer(pdf, log)
		log.Info("PDF export enabled", zap.Bool("remote", cfg.Printing.RemoteURL != ""))
	}

	// Assistant
	assistantOpts := []assistant.Option{assistant.WithTimeouts(cfg.AI.Timeout, cfg.AI.TestTimeout)}
	if aiMetrics, err := telemetry.NewAIMetrics(meterProvider.Meter("lawai/assistant")); err != nil {
		log.Warn("Assistant metrics unavailable", zap.Error(err))
	} else {
		assistantOpts = append(assistantOpts, assistant.WithRecorder(aiMetrics))
	}
	if cfg.AI.APIKey == "" {
		log.Warn("AI provider key not set, assistant calls will fail")
	}
	assistantService := assistant.NewService(ai.NewDeepSeekClient(cfg.AI, log), log, assistantOpts...)

	// Application services
	userService := identityapp.NewUserService(userRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	clientService := legalapp.NewClientService(clientRepo)
	caseService := legalapp.NewCaseService(caseRepo, clientRepo)
	deadlineService := legalapp.NewDeadlineService(deadlineRepo, caseRepo)
	documentService := legalapp.NewDocumentService(documentRepo, files, renderer, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order:
	// 1. Recovery - catch panics
	// 2. RequestID - generate or propagate the request id
	// 3. Logger - request-scoped logger and access log
	// 4. Tracing - server span per request
	// 5. Security headers and CORS
	// 6. BodyLimit - reject oversized bodies
	// 7. Metrics and global rate limit
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Multipart uploads are bounded by the document handler
	engine.Use(middleware.BodyLimitWithUploads(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize+(1<<20)))
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter("lawai/http")))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	healthHandler := handler.NewHealthHandler(db, version)
	engine.GET("/health", healthHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	apiMiddleware := router.APIMiddleware{
		Auth: []gin.HandlerFunc{jwtMiddleware, middleware.TracingAttributeInjector()},
	}
	if cfg.HTTP.AIRateLimitEnabled {
		aiLimiter := middleware.NewRateLimiter(cfg.HTTP.AIRateLimitRequests, cfg.HTTP.AIRateLimitWindow)
		apiMiddleware.AI = append(apiMiddleware.AI, middleware.RateLimit(aiLimiter))
	}

	r := router.NewRouter(engine, router.WithAPIPrefix(cfg.App.APIPrefix))
	api := router.RegisterAPI(r, router.APIHandlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService),
		Client:   handler.NewClientHandler(clientService),
		Case:     handler.NewCaseHandler(caseService),
		Deadline: handler.NewDeadlineHandler(deadlineService),
		Document: handler.NewDocumentHandler(documentService, cfg.HTTP.MaxUploadSize),
		AI:       handler.NewAIHandler(assistantService),
	}, apiMiddleware)
	api.Setup()
	log.Info("API routes registered", zap.String("prefix", api.Prefix()), zap.Int("routes", len(api.Routes())))

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared connection pool
	return m.Up()
}
