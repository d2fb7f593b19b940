package db

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/Mussab2003/secrets-app/internal/db/migrations"
)

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
