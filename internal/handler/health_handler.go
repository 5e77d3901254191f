package handler

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"halalshop-backend/internal/data"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db           sqlDB
	redis        *redis.Client
	kafkaBrokers []string
	log          *zap.Logger
	checkTimeout time.Duration
}

// sqlDB is the slice of database/sql.DB the readiness probe needs.
type sqlDB interface {
	PingContext(ctx context.Context) error
}

// NewHealthHandler wires the probes. redisClient and kafkaBrokers are
// optional; unset dependencies are skipped by the readiness check.
func NewHealthHandler(db sqlDB, redisClient *redis.Client, kafkaBrokers []string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redisClient,
		kafkaBrokers: kafkaBrokers,
		log:          log,
		checkTimeout: 2 * time.Second,
	}
}

// Healthz reports process liveness.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports whether the service can take traffic: the database
// must answer, and redis/kafka must answer when configured.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.checkTimeout)
	defer cancel()

	checks := map[string]string{}
	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
	}
	if h.redis != nil {
		if err := data.Ping(ctx, h.redis); err != nil {
			checks["redis"] = err.Error()
		}
	}
	if len(h.kafkaBrokers) > 0 {
		if err := checkKafka(ctx, h.kafkaBrokers); err != nil {
			checks["kafka"] = err.Error()
		}
	}

	if len(checks) > 0 {
		h.log.Warn("readiness check failed", zap.Any("checks", checks))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"checks": checks,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// checkKafka dials brokers until one answers.
func checkKafka(ctx context.Context, brokers []string) error {
	dialer := net.Dialer{Timeout: time.Second}
	var lastErr error
	for _, broker := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
