// Package migrations embeds the goose migrations of the two local databases:
// the session database (persisted identity + bearer token) and the
// per-identity scoped databases.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed session/*.sql scoped/*.sql
var Migrations embed.FS

const (
	SessionDir = "session"
	ScopedDir  = "scoped"
)

// Up applies every pending migration from dir to db. It uses a goose Provider
// rather than the package-level goose state, so it is safe to migrate several
// databases concurrently.
func Up(ctx context.Context, db *sql.DB, dir string) error {
	sub, err := fs.Sub(Migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations %s: %w", dir, err)
	}

	p, err := goose.NewProvider(goose.DialectSQLite3, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider %s: %w", dir, err)
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up %s: %w", dir, err)
	}
	return nil
}
