package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getMigrationsPath returns the absolute path to the SQLite migrations
func getMigrationsPath(t *testing.T) string {
	currentDir, err := os.Getwd()
	require.NoError(t, err, "Failed to get current directory")

	migrationsPath := filepath.Join(currentDir, "..", "..", "migrations", "sqlite")

	_, err = os.Stat(migrationsPath)
	require.NoError(t, err, "Migrations directory does not exist: "+migrationsPath)

	return migrationsPath
}

func TestSQLiteCache_Integration(t *testing.T) {
	if os.Getenv("SKIP_SQLITE_TESTS") == "true" {
		t.Skip("Skipping SQLite integration tests")
	}

	dbPath := filepath.Join(t.TempDir(), "cache_test.db")
	migrationsPath := getMigrationsPath(t)

	sc, err := NewSQLiteCache(dbPath, migrationsPath)
	require.NoError(t, err, "Failed to create SQLite cache")
	defer sc.Close()

	t.Run("TestRoundTrip", func(t *testing.T) {
		blob := []byte(`[{"code":"100000000001"}]`)
		require.NoError(t, sc.Store(CouponsKey, blob))

		loaded, err := sc.Load(CouponsKey)
		require.NoError(t, err)
		assert.Equal(t, blob, loaded)
	})

	t.Run("TestOverwrite", func(t *testing.T) {
		require.NoError(t, sc.Store(CouponsKey, []byte("first")))
		require.NoError(t, sc.Store(CouponsKey, []byte("second")))

		loaded, err := sc.Load(CouponsKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)
	})

	t.Run("TestAbsentKey", func(t *testing.T) {
		_, err := sc.Load("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("TestDelete", func(t *testing.T) {
		require.NoError(t, sc.Store(SessionKey, []byte("session")))
		require.NoError(t, sc.Delete(SessionKey))

		_, err := sc.Load(SessionKey)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, sc.Delete(SessionKey))
	})

	t.Run("TestSurvivesReopen", func(t *testing.T) {
		require.NoError(t, sc.Store(CouponsKey, []byte("durable")))
		require.NoError(t, sc.Close())

		reopened, err := NewSQLiteCache(dbPath, migrationsPath)
		require.NoError(t, err)
		defer reopened.Close()

		loaded, err := reopened.Load(CouponsKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("durable"), loaded)
	})
}
