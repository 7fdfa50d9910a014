package main

import (
	"context"
	"flag"
	"time"

	"doctor-booking-service/internal/app/config"
	"doctor-booking-service/internal/app/drivers/database"
	"doctor-booking-service/internal/app/drivers/logger"
	"doctor-booking-service/internal/pkg/migrations"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back all applied migrations")
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, driverConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("Error connecting to postgres", zap.Error(err))
	}
	defer pool.Close()

	if *dryRun {
		pending, err := migrations.Pending(pool)
		if err != nil {
			zapLogger.Fatal("Error planning migrations", zap.Error(err))
		}
		zapLogger.Info("Pending migrations", zap.Strings("ids", pending))
		return
	}

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	n, err := migrations.Run(pool, direction, zapLogger)
	if err != nil {
		zapLogger.Fatal("Error executing migration", zap.Error(err))
	}
	zapLogger.Info("Migrations applied", zap.Int("count", n))
}
