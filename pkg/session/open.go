package session

import (
	"context"
	"fmt"
	"strings"

	"ducktodo/pkg/logger"
	"ducktodo/pkg/sealer"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Backend    string
	SQLitePath string
	Redis      RedisConfig
	Mongo      MongoConfig
	// SealKey is a base64 AES key. When set, stored values are encrypted.
	SealKey string
}

// Open connects the configured backend and wraps it in a Store.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Discard()
	}

	var opts []StoreOption
	if cfg.SealKey != "" {
		sl, err := sealer.NewFromBase64(cfg.SealKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSealer(sl))
	}

	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendMemory:
		backend = NewMemoryBackend()
	case BackendSQLite, "":
		backend, err = NewSQLiteBackend(cfg.SQLitePath)
	case BackendRedis:
		backend, err = NewRedisBackend(ctx, cfg.Redis)
	case BackendMongo:
		backend, err = NewMongoBackend(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s session backend: %w", cfg.Backend, err)
	}

	log.Debug("Session store opened", "backend", cfg.Backend, "sealed", cfg.SealKey != "")
	return NewStore(backend, log, opts...), nil
}
