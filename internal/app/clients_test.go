package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/repos/testutil"
)

func roundTrip(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := s.LPush(ctx, "contactlist", "0a1b2c3d"); err != nil {
		t.Fatalf("LPush: %v", err)
	}
	n, err := s.LLen(ctx, "contactlist")
	if err != nil || n != 1 {
		t.Fatalf("LLen: n=%d err=%v", n, err)
	}
}

func TestWireStoreBackends(t *testing.T) {
	log := testutil.Logger(t)
	mr := miniredis.RunT(t)

	cases := map[string]Config{
		"memory": {StoreBackend: BackendMemory},
		"redis":  {StoreBackend: BackendRedis, RedisAddr: mr.Addr()},
		"sqlite": {StoreBackend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "contacts.db")},
		"upper":  {StoreBackend: " MEMORY "},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := wireStore(context.Background(), log, cfg)
			if err != nil {
				t.Fatalf("wireStore: %v", err)
			}
			defer s.Close()
			roundTrip(t, s)
		})
	}
}

func TestWireStoreErrors(t *testing.T) {
	log := testutil.Logger(t)
	for name, cfg := range map[string]Config{
		"unknown":        {StoreBackend: "cassandra"},
		"postgres-nodsn": {StoreBackend: BackendPostgres},
		"redis-noaddr":   {StoreBackend: BackendRedis},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := wireStore(context.Background(), log, cfg); err == nil {
				t.Fatalf("wireStore: expected error")
			}
		})
	}
}
