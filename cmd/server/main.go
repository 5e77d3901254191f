package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redislib "github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/plugin/opentelemetry/tracing"

	"halalshop-backend/internal/auth"
	"halalshop-backend/internal/config"
	"halalshop-backend/internal/data"
	"halalshop-backend/internal/handler"
	"halalshop-backend/internal/middleware"
	"halalshop-backend/internal/model"
	"halalshop-backend/internal/observability"
	"halalshop-backend/internal/router"
	"halalshop-backend/internal/service"
	"halalshop-backend/pkg/logger"
)

func main() {
	cfgPath := os.Getenv("HALALSHOP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/app.yaml"
	}
	cfg := config.MustLoad(cfgPath)
	serviceName := cfg.Observability.ServiceName
	if serviceName == "" {
		serviceName = "halalshop-backend"
	}
	environment := cfg.Observability.Environment
	if environment == "" {
		environment = "local"
	}
	log, err := logger.New(cfg.Logging.Level, environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log = log.With(
		zap.String("service", serviceName),
		zap.String("env", environment),
	)
	log.Info("loaded config", zap.String("path", cfgPath))

	tracingCfg := observability.TracingConfig{
		Enabled:          cfg.Observability.Tracing.Enabled,
		OTLPGrpcEndpoint: cfg.Observability.Tracing.OTLPGrpcEndpoint,
		Insecure:         cfg.Observability.Tracing.Insecure,
		SampleRate:       cfg.Observability.Tracing.SampleRate,
	}
	resourceCfg := observability.ResourceConfig{
		ServiceName: serviceName,
		Environment: environment,
	}
	tracingShutdown, err := observability.SetupTracing(context.Background(), tracingCfg, resourceCfg)
	if err != nil {
		log.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(shutdownCtx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := data.NewDB(cfg.Database, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	if cfg.Observability.Tracing.Enabled {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			log.Warn("gorm tracing plugin init failed", zap.Error(err))
		}
	}
	if err := db.AutoMigrate(&model.Shop{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()
	log.Info("connected to database", zap.String("driver", cfg.Database.Driver))

	// Redis only backs the deny-list and the readiness probe; it is
	// optional.
	var redisClient *redislib.Client
	if cfg.Redis.Addr != "" {
		redisClient = data.NewRedis(cfg.Redis)
		if err := data.Ping(context.Background(), redisClient); err != nil {
			log.Fatal("redis ping failed", zap.Error(err))
		}
		defer redisClient.Close()
		if cfg.Observability.Tracing.Enabled {
			if err := redisotel.InstrumentTracing(redisClient); err != nil {
				log.Warn("redis tracing init failed", zap.Error(err))
			}
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	denyList, err := auth.New(cfg.Auth.DenyList, redisClient)
	if err != nil {
		log.Fatal("deny-list init failed", zap.Error(err))
	}

	var metricsRegistry *prometheus.Registry
	var shopMetrics *observability.ShopMetrics
	if cfg.Observability.Metrics.Enabled {
		metricsRegistry = observability.NewMetricsRegistry()
		shopMetrics = observability.NewShopMetrics(metricsRegistry, serviceName)
	}

	var kafkaWriter *kafka.Writer
	var events *service.ShopEventPublisher
	var kafkaBrokers []string
	if cfg.Kafka.Enabled {
		kafkaWriter = data.NewKafkaWriter(cfg.Kafka, cfg.Kafka.Topic)
		defer kafkaWriter.Close()
		events = service.NewShopEventPublisher(kafkaWriter, shopMetrics, log)
		kafkaBrokers = cfg.Kafka.Brokers
		log.Info("configured kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	services := service.NewRegistry(db, events, shopMetrics, log)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.ErrorHandler(log))
	engine.Use(middleware.RequestIDMiddleware(cfg.Observability.Logging.RequestIDHeader))
	if cfg.Observability.Tracing.Enabled {
		engine.Use(otelgin.Middleware(serviceName))
	}
	metricsPath := cfg.Observability.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if cfg.Observability.Metrics.Enabled {
		metrics := observability.NewHTTPMetrics(metricsRegistry, serviceName)
		engine.Use(metrics.Middleware())
		engine.GET(metricsPath, gin.WrapH(metrics.Handler()))
	}
	engine.Use(middleware.RequestLogger(log))

	// Probes and the scrape endpoint stay outside the shared-secret
	// scheme; everything else must authenticate.
	gateSkip := []string{"/healthz", "/readyz", metricsPath}
	engine.Use(middleware.AccessGate(cfg.Auth.Secret, cfg.Auth.ClientName, denyList, gateSkip, log))

	healthHandler := handler.NewHealthHandler(sqlDB, redisClient, kafkaBrokers, log)
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET("/readyz", healthHandler.Readyz)

	router.RegisterRoutes(engine, services)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	go func() {
		log.Info("starting http server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server run failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}
	log.Info("server exited")
}
