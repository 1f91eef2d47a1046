package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListMigrationsOrdersSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := listMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "001_a.sql"), filepath.Join(dir, "002_b.sql")}, files)
}

func TestRunMigrationsWithoutPoolIsNoop(t *testing.T) {
	err := RunMigrations(context.Background(), nil, "does-not-exist", zap.NewNop())
	assert.NoError(t, err)
}

func TestNilHandlesAreSafe(t *testing.T) {
	var pg *Postgres
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()

	var r *Redis
	assert.Nil(t, r.ClientHandle())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
