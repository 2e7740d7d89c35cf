// Package db defines the storage facade implemented by concrete
// key-value backends. Consumers depend on the narrow sub-interfaces.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	SetStore
	SortedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations over JSON payloads.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// SetStore provides unordered set operations (membership indexes).
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// ZMember is one sorted-set member with its score.
type ZMember struct {
	Member string
	Score  float64
}

// SortedSetStore provides sorted-set operations (time-ordered logs).
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, members ...ZMember) error
	ZRangeByScore(ctx context.Context, key string, min, max float64, limit int) ([]string, error)
	ZCard(ctx context.Context, key string) (int, error)
}
