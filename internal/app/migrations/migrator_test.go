package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersByFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/002_second.sql": {Data: []byte("SELECT 2;")},
		"sql/001_first.sql":  {Data: []byte("SELECT 1;")},
		"sql/README.md":      {Data: []byte("ignored")},
	}

	migrations, err := Load(fsys, "sql")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "SELECT 1;", migrations[0].SQL)
	assert.Equal(t, "002_second.sql", migrations[1].Name)
}

func TestLoadRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/001_a.sql": {Data: []byte("SELECT 1;")},
		"sql/001_b.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := Load(fsys, "sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share version 001")
}

func TestEmbeddedMigrationsDeclareUniqueConstraints(t *testing.T) {
	migrations, err := Load(embedded, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	var all string
	for _, m := range migrations {
		all += m.SQL
	}
	assert.Contains(t, all, "bookings_slot_key UNIQUE (room, day, start_time, end_time)")
	assert.Contains(t, all, "enrollments_user_course_key UNIQUE (user_id, course_id)")
	assert.Contains(t, all, "courses_code_key UNIQUE (code)")
}
