package metadata

import (
	"context"
	"errors"
)

// ErrFeedClosed is returned by watchers whose change feed ended while their
// context was still live.
var ErrFeedClosed = errors.New("change feed closed")

// Repository is a key/value storage area. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Change signals that the area was written. Key is empty when the backend
// cannot tell which key changed.
type Change struct {
	Key string
}

// Notifier is implemented by durable areas. The returned channel is closed
// once ctx is done or the feed can no longer be read.
type Notifier interface {
	Changes(ctx context.Context) (<-chan Change, error)
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
	_ Notifier   = (*SQLiteRepository)(nil)
	_ Notifier   = (*RedisRepository)(nil)
)
