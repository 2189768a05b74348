package kv

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Options selects and parameterizes a backend.
type Options struct {
	Backend     string
	DSN         string // sqlite path or postgres DSN
	RedisURL    string
	RedisPrefix string
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendSQLite, "":
		s, err = OpenSQLite(ctx, opts.DSN)
	case BackendPostgres:
		s, err = OpenPostgres(ctx, opts.DSN)
	case BackendRedis:
		s, err = OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	case BackendMemory:
		s = NewMemoryStore()
	default:
		err = fmt.Errorf("unknown store backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
