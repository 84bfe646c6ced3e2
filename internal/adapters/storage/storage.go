package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

const opTimeout = 3 * time.Second

type Options struct {
	Driver     string
	DataDir    string
	SQLitePath string
	Redis      *redis.Client
	KeyPrefix  string
}

// Backend is a Storage that owns resources.
type Backend interface {
	domain.Storage
	Close() error
}

// Open builds the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemoryStorage(), nil
	case DriverFile:
		return NewFileStorage(opts.DataDir)
	case DriverSQLite:
		return NewSQLiteStorage(ctx, opts.SQLitePath)
	case DriverRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("storage: redis driver needs a client")
		}
		return NewRedisStorage(opts.Redis, opts.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
