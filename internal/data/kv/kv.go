// Package kv defines the list + hash key-value port the contact repo is
// written against, and hosts its backends (redis, SQL via gorm, in-memory).
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("kv: store closed")

// Store is a key-value store exposing an ordered list structure and a hash
// structure. Each call is atomic on its own; nothing spans two calls.
type Store interface {
	// LPush prepends value to the list at key.
	LPush(ctx context.Context, key string, value string) error
	// LRange returns list elements between start and stop, both inclusive.
	// Negative indexes count from the tail. Out of range bounds yield an
	// empty or shortened slice rather than an error.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// LLen returns the list length, 0 when the key is absent.
	LLen(ctx context.Context, key string) (int64, error)
	// HSet upserts field in the hash at key.
	HSet(ctx context.Context, key, field string, value []byte) error
	// HGet returns the value of field and whether it was present.
	HGet(ctx context.Context, key, field string) ([]byte, bool, error)
	// HMGet returns one entry per field, nil where the field is absent.
	HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// NormalizeRange resolves Redis style inclusive, possibly negative bounds
// against a list of length n. ok is false when the range is empty.
func NormalizeRange(start, stop, n int64) (lo, hi int64, ok bool) {
	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop = n + stop
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}
