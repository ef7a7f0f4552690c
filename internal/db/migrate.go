package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/geocoder89/todohub/internal/db/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Command names accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

func init() {
	goose.SetBaseFS(migrations.FS)
}

// Migrate runs a goose command against the embedded migrations. goose needs
// database/sql, so a short-lived handle is opened through the pgx stdlib driver.
func Migrate(ctx context.Context, dsn, command string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer conn.Close()

	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, conn, ".")
	case MigrateDown:
		err = goose.DownContext(ctx, conn, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, conn, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
