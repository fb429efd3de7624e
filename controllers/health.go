package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/localkart/core-api/utils"
)

type HealthController struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewHealthController(gdb *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: gdb, RDB: rdb}
}

// Check reports liveness plus the reachability of the backing stores.
func (hc *HealthController) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := hc.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if err := hc.RDB.Ping(c.Context()).Err(); err != nil {
		redisStatus = "down"
	}

	return utils.OK(c, fiber.StatusOK, fiber.Map{
		"status":    "ok",
		"db":        dbStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
