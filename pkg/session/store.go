package session

import (
	"context"
	"fmt"
	"time"

	"ducktodo/pkg/logger"
	"ducktodo/pkg/sealer"
)

const DefaultOpTimeout = 3 * time.Second

// Store is the synchronous key-value view the client uses. Backend failures
// are logged and swallowed: an unavailable store reads as empty and writes
// are dropped, so token handling never fails because of storage.
type Store struct {
	backend   Backend
	opTimeout time.Duration
	sealer    *sealer.Sealer
	logger    *logger.Logger
}

type StoreOption func(*Store)

// WithSealer encrypts values before they reach the backend. A stored value
// that does not open with the sealer reads as absent.
func WithSealer(s *sealer.Sealer) StoreOption {
	return func(st *Store) {
		st.sealer = s
	}
}

func NewStore(backend Backend, log *logger.Logger, opts ...StoreOption) *Store {
	if log == nil {
		log = logger.Discard()
	}
	s := &Store{
		backend:   backend,
		opTimeout: DefaultOpTimeout,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(key string) string {
	var value string
	s.bestEffort("get", key, func(ctx context.Context) error {
		v, found, err := s.backend.Get(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if s.sealer != nil {
			if v, err = s.sealer.Open(v); err != nil {
				return err
			}
		}
		value = v
		return nil
	})
	return value
}

func (s *Store) Set(key, value string) {
	s.bestEffort("set", key, func(ctx context.Context) error {
		if s.sealer != nil {
			sealed, err := s.sealer.Seal(value)
			if err != nil {
				return err
			}
			value = sealed
		}
		return s.backend.Set(ctx, key, value)
	})
}

func (s *Store) Remove(key string) {
	s.bestEffort("remove", key, func(ctx context.Context) error {
		return s.backend.Delete(ctx, key)
	})
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) bestEffort(op, key string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("Session store operation panicked", "op", op, "key", key, "panic", fmt.Sprint(r))
		}
	}()

	if err := fn(ctx); err != nil {
		s.logger.Debug("Session store operation failed", "op", op, "key", key, "error", err)
	}
}
