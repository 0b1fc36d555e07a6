package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_add_index.sql":   {Data: []byte("SELECT 2;")},
		"m/001_create.sql":      {Data: []byte("SELECT 1;")},
		"m/README.md":           {Data: []byte("notes")},
		"m/nested/003_skip.sql": {Data: []byte("SELECT 3;")},
	}

	files, err := migrationFiles(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"m/001_create.sql", "m/002_add_index.sql"}, files)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(fstest.MapFS{}, "absent")
	assert.Error(t, err)
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", migrationVersion("sql/001_create_courses.sql"))
	assert.Equal(t, "010", migrationVersion("010_x.sql"))
}

func TestBundled_ContainsCourseSchema(t *testing.T) {
	fsys, dir := Bundled()

	files, err := migrationFiles(fsys, dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(fsys, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS courses")
	assert.Contains(t, string(content), "ix_courses_name")
}
