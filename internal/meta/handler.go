package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg   *config.Config
	db    Pinger
	cache cache.Cache
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db Pinger, c cache.Cache) *Handler {
	return &Handler{
		cfg:   cfg,
		db:    db,
		cache: c,
	}
}

// Health checks the database and the cache. A failing database makes the
// service unhealthy; a failing cache only degrades it.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	database := probe(ctx, "database", h.db)
	cacheCheck := probe(ctx, "cache", h.cache)
	cacheCheck["driver"] = h.cache.Name()

	status, code := "healthy", http.StatusOK
	switch {
	case database["status"] != "up":
		status, code = "unhealthy", http.StatusServiceUnavailable
	case cacheCheck["status"] != "up":
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status": status,
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
		},
		"checks": gin.H{
			"database": database,
			"cache":    cacheCheck,
		},
	})
}

func probe(ctx context.Context, name string, target Pinger) gin.H {
	start := time.Now()
	if err := target.Ping(ctx); err != nil {
		slog.Error("health check failed", "check", name, "error", err)
		return gin.H{"status": "down", "error": err.Error()}
	}
	return gin.H{"status": "up", "latency_ms": time.Since(start).Milliseconds()}
}
