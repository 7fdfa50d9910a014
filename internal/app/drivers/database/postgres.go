package database

import (
	"context"
	"fmt"
	"time"

	"doctor-booking-service/internal/app/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewPostgresPool(ctx context.Context, driverConfig *config.DriverConfig, log *zap.Logger) (*pgxpool.Pool, error) {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		driverConfig.PostgresDB.Username,
		driverConfig.PostgresDB.Password,
		driverConfig.PostgresDB.Host,
		driverConfig.PostgresDB.Port,
		driverConfig.PostgresDB.DBName,
		driverConfig.PostgresDB.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	if driverConfig.PostgresDB.MaxConns > 0 {
		poolConfig.MaxConns = int32(driverConfig.PostgresDB.MaxConns)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
	}

	log.Info("Successfully connected to postgres database",
		zap.String("host", driverConfig.PostgresDB.Host),
		zap.String("db_name", driverConfig.PostgresDB.DBName),
	)
	return pool, nil
}
