package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /health/json probes the store and Redis; degraded when either
// fails.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.DB == nil {
		dbStatus = "not configured"
	} else if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if h.Rdb == nil {
		redisStatus = "not configured"
	} else if err := h.Rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	status := "ok"
	if dbStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
