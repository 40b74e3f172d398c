package session

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("session: backend closed")

// Backend is durable key-value storage for client-side session state.
// Get reports found=false for a missing key; that is not an error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
