package migration_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/migration"
)

/*
TestMigrateURL checks the scheme rewrite golang-migrate needs for pgx v5.
*/
func TestMigrateURL(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres scheme", "postgres://u:p@db:5432/library", "pgx5://u:p@db:5432/library"},
		{"postgresql scheme", "postgresql://db/library?sslmode=disable", "pgx5://db/library?sslmode=disable"},
		{"already pgx5", "pgx5://db/library", "pgx5://db/library"},
		{"keyword dsn untouched", "host=db dbname=library", "host=db dbname=library"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.MigrateURL(tt.dsn))
		})
	}
}

/*
TestCatalogSchema_BigintKeys checks that every key column is 64-bit, so any id
the HTTP layer parses can be bound as a query parameter.
*/
func TestCatalogSchema_BigintKeys(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "..", "data", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	narrow := regexp.MustCompile(`(?i)\b(SERIAL|INTEGER|INT|INT4)\b`)
	for _, file := range files {
		ddl, err := os.ReadFile(file)
		require.NoError(t, err)

		assert.Empty(t, narrow.FindAllString(string(ddl), -1), filepath.Base(file))
	}
}
