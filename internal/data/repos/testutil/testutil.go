package testutil

import (
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/kv/memstore"
	"github.com/yungbote/addressbook-backend/internal/data/kv/redisstore"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func MemStore(tb testing.TB) kv.Store {
	tb.Helper()
	s := memstore.New()
	tb.Cleanup(func() { _ = s.Close() })
	return s
}

// RedisStore starts a miniredis server scoped to the test.
func RedisStore(tb testing.TB) (kv.Store, *miniredis.Miniredis) {
	tb.Helper()
	mr := miniredis.RunT(tb)
	s := redisstore.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	tb.Cleanup(func() { _ = s.Close() })
	return s, mr
}
