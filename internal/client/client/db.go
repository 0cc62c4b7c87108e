package client

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophsession/internal/client/migrations"
)

// InitDatabase opens the session database at dsn and applies its migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, db, migrations.SessionDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
