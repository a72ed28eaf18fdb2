package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()

	// Файлы создаются в произвольном порядке, каталог и не-sql игнорируются.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_projects.sql"), []byte("-- projects"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_users.sql"), []byte("-- users"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	names, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_users.sql", "002_projects.sql"}, names)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "нет-такого"))
	assert.Error(t, err)
}
