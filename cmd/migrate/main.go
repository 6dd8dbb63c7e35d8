package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/config"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/db"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/logging"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.MustNew("migrate")
	defer logger.Sync()

	if cfg.DBConnString == "" {
		logger.Fatal("DB_DSN is required to run migrations")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
