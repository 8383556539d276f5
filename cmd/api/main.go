package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wastex-backend/internal/app"
	"wastex-backend/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	fiberApp, db, rdb, err := app.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	// Verify connections before announcing the server.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("get DB handle")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	fmt.Println("Database connected")

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	fmt.Println("Redis connected")

	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
