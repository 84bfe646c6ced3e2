package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-garden/internal/adapters/cache"
	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

func runStorageSuite(t *testing.T, s domain.Storage) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "profile:nobody:habits")
		assert.ErrorIs(t, err, domain.ErrStorageKeyNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		key := "profile:user-1:completedHabits"
		value := []byte(`{"exercise":{"2024-01-10":true}}`)

		require.NoError(t, s.Set(ctx, key, value))
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, string(value), string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := "user-email:someone@example.com"
		require.NoError(t, s.Set(ctx, key, []byte(`"a"`)))
		require.NoError(t, s.Set(ctx, key, []byte(`"b"`)))

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `"b"`, string(got))
	})

	t.Run("Delete", func(t *testing.T) {
		key := "profile:user-1:habitNotes"
		require.NoError(t, s.Set(ctx, key, []byte(`{}`)))
		require.NoError(t, s.Delete(ctx, key))

		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrStorageKeyNotFound)
		assert.NoError(t, s.Delete(ctx, key), "deleting a missing key is a no-op")
	})

	t.Run("Concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				key := fmt.Sprintf("concurrent:%d", id)
				assert.NoError(t, s.Set(ctx, key, []byte(`true`)))
				_, err := s.Get(ctx, key)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	runStorageSuite(t, s)

	t.Run("Values are copied", func(t *testing.T) {
		ctx := context.Background()
		value := []byte(`"x"`)
		require.NoError(t, s.Set(ctx, "copy", value))
		value[1] = 'y'

		got, err := s.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, `"x"`, string(got))
	})
}

func TestFileStorage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	runStorageSuite(t, s)

	t.Run("No temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp-")
		}
	})

	t.Run("Survives reopen", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "profile:user-2:habits", []byte(`[]`)))

		reopened, err := NewFileStorage(dir)
		require.NoError(t, err)
		got, err := reopened.Get(ctx, "profile:user-2:habits")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("Empty dir is rejected", func(t *testing.T) {
		_, err := NewFileStorage("")
		assert.Error(t, err)
	})
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	runStorageSuite(t, s)

	t.Run("Schema is idempotent", func(t *testing.T) {
		assert.NoError(t, s.EnsureSchema(context.Background()))
	})
}

func TestSQLiteStorage_File(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/garden.db"

	s, err := NewSQLiteStorage(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "profile:user-1:habits", []byte(`[]`)))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStorage(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "profile:user-1:habits")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRedisStorage_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{
		Addr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	require.NoError(t, rdb.FlushDB(context.Background()).Err(), "Failed to flush test DB")
	runStorageSuite(t, NewRedisStorage(rdb, "test:"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Default is memory", Options{}, false},
		{"File", Options{Driver: DriverFile, DataDir: t.TempDir()}, false},
		{"SQLite", Options{Driver: DriverSQLite, SQLitePath: ":memory:"}, false},
		{"Redis without client", Options{Driver: DriverRedis}, true},
		{"Unknown driver", Options{Driver: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(ctx, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, b.Close())
		})
	}
}
