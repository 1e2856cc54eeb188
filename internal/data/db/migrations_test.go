package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func openRawConn(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), FileName)
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func indexExists(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestOpen_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	database, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	assert.Equal(t, filepath.Join(dir, FileName), database.Path())
	assert.FileExists(t, database.Path())
}

func TestMigrateUp_FreshDB(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	applied, err := appliedVersions(ctx, database.Conn())
	require.NoError(t, err)

	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, applied, len(migrations))
	for _, m := range migrations {
		assert.True(t, applied[m.Version], "version %d should be applied", m.Version)
	}

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM outcomes LIMIT 0")
	require.NoError(t, err, "outcomes table should exist")
	assert.True(t, indexExists(t, database.Conn(), "idx_outcomes_started_at"))
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := openTestDB(t)

	err := migrateUp(context.Background(), database.Conn())
	assert.NoError(t, err, "second migrateUp should be a no-op")
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	_, err := conn.ExecContext(ctx, `
		INSERT INTO outcomes (id, dialog_id, flow, result, source, started_at, duration_ns)
		VALUES ('o-1', 'ab12cd', 'confirm', 'confirmed', 'terminal', 1, 1)
	`)
	require.NoError(t, err)

	require.NoError(t, MigrateDown(ctx, conn, 1))
	assert.False(t, indexExists(t, conn, "idx_outcomes_started_at"), "indexes dropped")

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM outcomes").Scan(&count))
	assert.Equal(t, 1, count, "rows survive reverting the index migration")

	require.NoError(t, migrateUp(ctx, conn))
	assert.True(t, indexExists(t, conn, "idx_outcomes_started_at"), "re-applied")
}

func TestMigrateDown_InvalidN(t *testing.T) {
	conn := openRawConn(t)
	ctx := context.Background()

	require.Error(t, MigrateDown(ctx, conn, 0))
	require.Error(t, MigrateDown(ctx, conn, -1))
}

func TestMigrateDown_TooMany(t *testing.T) {
	database := openTestDB(t)

	migrations, err := loadMigrations()
	require.NoError(t, err)

	err = MigrateDown(context.Background(), database.Conn(), len(migrations)+1)
	assert.Error(t, err)
}

func TestWithTx_Rollback(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	err := database.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO outcomes (id, dialog_id, flow, result, source, started_at, duration_ns)
			VALUES ('o-1', 'x', 'confirm', 'confirmed', 'terminal', 1, 1)`)
		require.NoError(t, err)
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM outcomes").Scan(&count))
	assert.Zero(t, count)
}

func TestLoadMigrations_Valid(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].Version, migrations[i-1].Version)
	}
	for _, m := range migrations {
		assert.NotEmpty(t, m.UpSQL, "migration %d up SQL", m.Version)
		assert.NotEmpty(t, m.DownSQL, "migration %d down SQL", m.Version)
		assert.NotEmpty(t, m.Name, "migration %d name", m.Version)
	}
}

func TestReadMigrations_Pairing(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name: "missing down",
			files: fstest.MapFS{
				"m/0001_a.up.sql": {Data: []byte("SELECT 1")},
			},
			wantErr: "no down file",
		},
		{
			name: "missing up",
			files: fstest.MapFS{
				"m/0001_a.down.sql": {Data: []byte("SELECT 1")},
			},
			wantErr: "no up file",
		},
		{
			name: "bad name",
			files: fstest.MapFS{
				"m/first.sql": {Data: []byte("SELECT 1")},
			},
			wantErr: "first.sql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readMigrations(tt.files, "m")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReadMigrations_Sorted(t *testing.T) {
	files := fstest.MapFS{
		"m/0010_b.up.sql":   {Data: []byte("up b")},
		"m/0010_b.down.sql": {Data: []byte("down b")},
		"m/0002_a.up.sql":   {Data: []byte("up a")},
		"m/0002_a.down.sql": {Data: []byte("down a")},
	}

	migrations, err := readMigrations(files, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 2, migrations[0].Version)
	assert.Equal(t, "down a", migrations[0].DownSQL)
	assert.Equal(t, "b", migrations[1].Name)
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename      string
		wantVersion   int
		wantName      string
		wantDirection string
		wantErr       bool
	}{
		{"0001_outcomes.up.sql", 1, "outcomes", "up", false},
		{"0001_outcomes.down.sql", 1, "outcomes", "down", false},
		{"0100_big_version.down.sql", 100, "big_version", "down", false},
		{"bad.sql", 0, "", "", true},
		{"0001_outcomes.sql", 0, "", "", true},
		{"0000_zero.up.sql", 0, "", "", true},
		{"abc_notnumber.up.sql", 0, "", "", true},
		{"0001_.up.sql", 0, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, direction, err := parseFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDirection, direction)
		})
	}
}
