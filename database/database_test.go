package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MigratesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")

	db, err := Open(path)
	require.NoError(t, err)

	for _, table := range []string{"user", "token", "blob"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
	require.NoError(t, db.Close())

	// reopening an up to date file is not an error
	db, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "reqlicit.sqlite?"+connParams, dsn("reqlicit.sqlite"))
	assert.Equal(t, "file:reqlicit.sqlite?cache=shared&"+connParams, dsn("file:reqlicit.sqlite?cache=shared"))
}

func TestOpen_URLWithQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sqlite")

	db, err := Open("file:" + path + "?mode=rwc")
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
