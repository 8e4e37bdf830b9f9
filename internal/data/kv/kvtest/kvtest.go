// Package kvtest holds a behavioural suite every kv.Store backend must pass.
package kvtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
)

// Run exercises list and hash semantics against the store returned by newStore.
// Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) kv.Store) {
	t.Helper()

	t.Run("LPushPrepends", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, v := range []string{"a", "b", "c"} {
			if err := s.LPush(ctx, "l", v); err != nil {
				t.Fatalf("LPush(%s): %v", v, err)
			}
		}
		got, err := s.LRange(ctx, "l", 0, -1)
		if err != nil {
			t.Fatalf("LRange: %v", err)
		}
		if fmt.Sprint(got) != "[c b a]" {
			t.Fatalf("LRange: got=%v want=[c b a]", got)
		}
		n, err := s.LLen(ctx, "l")
		if err != nil || n != 3 {
			t.Fatalf("LLen: got=%d err=%v", n, err)
		}
	})

	t.Run("LRangeWindows", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for i := 0; i < 15; i++ {
			if err := s.LPush(ctx, "l", fmt.Sprintf("v%02d", i)); err != nil {
				t.Fatalf("LPush: %v", err)
			}
		}
		got, err := s.LRange(ctx, "l", 10, 19)
		if err != nil {
			t.Fatalf("LRange: %v", err)
		}
		if fmt.Sprint(got) != "[v04 v03 v02 v01 v00]" {
			t.Fatalf("LRange(10,19): got=%v", got)
		}
		got, err = s.LRange(ctx, "l", 15, 24)
		if err != nil {
			t.Fatalf("LRange past end: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("LRange past end: expected empty, got %v", got)
		}
		got, err = s.LRange(ctx, "missing", 0, 9)
		if err != nil || len(got) != 0 {
			t.Fatalf("LRange missing key: got=%v err=%v", got, err)
		}
		got, err = s.LRange(ctx, "l", -2, -1)
		if err != nil || fmt.Sprint(got) != "[v01 v00]" {
			t.Fatalf("LRange negative: got=%v err=%v", got, err)
		}
	})

	t.Run("HashOps", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.HSet(ctx, "h", "f1", []byte("one")); err != nil {
			t.Fatalf("HSet: %v", err)
		}
		if err := s.HSet(ctx, "h", "f2", []byte("two")); err != nil {
			t.Fatalf("HSet: %v", err)
		}
		if err := s.HSet(ctx, "h", "f1", []byte("uno")); err != nil {
			t.Fatalf("HSet overwrite: %v", err)
		}
		v, ok, err := s.HGet(ctx, "h", "f1")
		if err != nil || !ok || string(v) != "uno" {
			t.Fatalf("HGet: got=%q ok=%v err=%v", v, ok, err)
		}
		_, ok, err = s.HGet(ctx, "h", "nope")
		if err != nil || ok {
			t.Fatalf("HGet missing: ok=%v err=%v", ok, err)
		}
		vals, err := s.HMGet(ctx, "h", "f2", "nope", "f1")
		if err != nil {
			t.Fatalf("HMGet: %v", err)
		}
		if len(vals) != 3 || string(vals[0]) != "two" || vals[1] != nil || string(vals[2]) != "uno" {
			t.Fatalf("HMGet: unexpected %q", vals)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}
