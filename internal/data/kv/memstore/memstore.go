// Package memstore is an in-process kv.Store used for local runs and tests.
package memstore

import (
	"context"
	"sync"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
)

type Store struct {
	mu     sync.RWMutex
	lists  map[string][]string
	hashes map[string]map[string][]byte
	closed bool
}

func New() *Store {
	return &Store{
		lists:  make(map[string][]string),
		hashes: make(map[string]map[string][]byte),
	}
}

var _ kv.Store = (*Store)(nil)

func (s *Store) LPush(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	list := s.lists[key]
	next := make([]string, 0, len(list)+1)
	next = append(next, value)
	next = append(next, list...)
	s.lists[key] = next
	return nil
}

func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, kv.ErrClosed
	}
	list := s.lists[key]
	lo, hi, ok := kv.NormalizeRange(start, stop, int64(len(list)))
	if !ok {
		return []string{}, nil
	}
	out := make([]string, hi-lo+1)
	copy(out, list[lo:hi+1])
	return out, nil
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, kv.ErrClosed
	}
	return int64(len(s.lists[key])), nil
}

func (s *Store) HSet(ctx context.Context, key, field string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string][]byte)
		s.hashes[key] = h
	}
	h[field] = append([]byte(nil), value...)
	return nil
}

func (s *Store) HGet(ctx context.Context, key, field string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, kv.ErrClosed
	}
	v, ok := s.hashes[key][field]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, kv.ErrClosed
	}
	h := s.hashes[key]
	out := make([][]byte, len(fields))
	for i, f := range fields {
		if v, ok := h[f]; ok {
			out[i] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return kv.ErrClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
