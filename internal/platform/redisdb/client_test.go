package redisdb

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

func TestNewClientPings(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := NewClient(context.Background(), logger.NewNop(), Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
}

func TestNewClientRequiresAddr(t *testing.T) {
	if _, err := NewClient(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("NewClient: expected error for empty addr")
	}
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	addr := mr.Addr()
	mr.Close()
	if _, err := NewClient(context.Background(), nil, Options{Addr: addr}); err == nil {
		t.Fatalf("NewClient: expected ping failure")
	}
}
