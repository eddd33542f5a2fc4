package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_EmbeddedRegistry(t *testing.T) {
	migs := GetMigrations()
	require.NotEmpty(t, migs)

	// Versions are sorted and unique, and every migration has both scripts
	seen := make(map[int]bool)
	last := 0
	for _, m := range migs {
		assert.Greater(t, m.Version, last, "versions must be strictly increasing")
		assert.False(t, seen[m.Version])
		seen[m.Version] = true
		last = m.Version

		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}

func TestGetMigrationByVersion(t *testing.T) {
	m := GetMigrationByVersion(1)
	require.NotNil(t, m)
	assert.Equal(t, "create_users", m.Name)
	assert.Equal(t, "000001_create_users", m.String())

	assert.Nil(t, GetMigrationByVersion(999999))
}
