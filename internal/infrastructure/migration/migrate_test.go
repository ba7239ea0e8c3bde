package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"000001_create_orders",
		"000002_create_lots",
		"000003_create_supplier_payments",
	}, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			up, err := fs.ReadFile(migrationFiles, "sql/"+name+".up.sql")
			require.NoError(t, err)
			down, err := fs.ReadFile(migrationFiles, "sql/"+name+".down.sql")
			require.NoError(t, err)

			assert.Contains(t, strings.ToUpper(string(up)), "CREATE TABLE")
			assert.Contains(t, strings.ToUpper(string(down)), "DROP TABLE")
		})
	}
}
