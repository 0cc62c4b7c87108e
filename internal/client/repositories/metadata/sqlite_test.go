package metadata

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophsession/internal/client/migrations"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/dbx"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db, migrations.SessionDir))
	return db
}

func keys(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT key FROM metadata ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.UserStorageKey, []byte(`{"name":"Ann"}`)))

	v, err := r.Get(ctx, common.UserStorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"Ann"}`), v)
}

func TestGet_AbsentKeyIsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.TokenStorageKey, []byte("old")))
	require.NoError(t, r.Set(ctx, common.TokenStorageKey, []byte("new")))

	v, err := r.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.TokenStorageKey, nil))

	v, err := r.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.UserStorageKey, []byte("{}")))
	require.NoError(t, r.Set(ctx, common.TokenStorageKey, []byte("tok")))
	require.NoError(t, r.Set(ctx, "other", []byte("keep")))

	require.NoError(t, r.Delete(ctx, common.UserStorageKey, common.TokenStorageKey, "absent"))
	assert.Equal(t, []string{"other"}, keys(t, db))

	require.NoError(t, r.Delete(ctx, common.UserStorageKey, common.TokenStorageKey))
	require.NoError(t, r.Delete(ctx))
	assert.Equal(t, []string{"other"}, keys(t, db))
}

func TestInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, common.UserStorageKey, []byte("u")); err != nil {
			return err
		}
		return r.Set(ctx, common.TokenStorageKey, []byte("t"))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{common.TokenStorageKey, common.UserStorageKey}, keys(t, db))
}

func TestDBErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "a", "b")
	require.ErrorContains(t, err, "failed to delete metadata[a b]")
}
