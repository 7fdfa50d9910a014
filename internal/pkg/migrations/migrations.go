package migrations

import (
	"embed"

	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       "sql",
	}
}

// Run applies pending migrations in the given direction and returns how many ran.
func Run(pool *pgxpool.Pool, direction migrate.MigrationDirection, log *zap.Logger) (int, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	n, err := migrate.Exec(db, "postgres", source(), direction)
	if err != nil {
		log.Error("migrations.Run failed", zap.Error(err))
		return n, exceptions.ErrPostgresDBMigrate(err)
	}

	log.Info("migrations.Run succeeded", zap.Int("applied", n))
	return n, nil
}

// Pending lists the ids of migrations not yet applied.
func Pending(pool *pgxpool.Pool) ([]string, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	planned, _, err := migrate.PlanMigration(db, "postgres", source(), migrate.Up, 0)
	if err != nil {
		return nil, exceptions.ErrPostgresDBMigrate(err)
	}

	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}
