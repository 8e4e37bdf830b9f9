package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/addressbook-backend/internal/data/db"
	"github.com/yungbote/addressbook-backend/internal/data/kv"
	"github.com/yungbote/addressbook-backend/internal/data/kv/memstore"
	"github.com/yungbote/addressbook-backend/internal/data/kv/redisstore"
	"github.com/yungbote/addressbook-backend/internal/data/kv/sqlstore"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
	"github.com/yungbote/addressbook-backend/internal/platform/redisdb"
)

// wireStore opens the contact store selected by cfg.StoreBackend.
func wireStore(ctx context.Context, log *logger.Logger, cfg Config) (kv.Store, error) {
	log.Info("Wiring contact store...", "backend", cfg.StoreBackend)

	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case BackendRedis:
		rdb, err := redisdb.NewClient(ctx, log, redisdb.Options{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		return redisstore.New(rdb), nil

	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("init postgres: POSTGRES_DSN is empty")
		}
		return openSQLStore(log, db.DriverPostgres, cfg.PostgresDSN)

	case BackendSQLite:
		return openSQLStore(log, db.DriverSQLite, cfg.SQLitePath)

	case BackendMemory:
		log.Warn("using in-memory contact store; data is lost on exit")
		return memstore.New(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func openSQLStore(log *logger.Logger, driver, dsn string) (kv.Store, error) {
	gdb, err := db.Open(log, db.Options{Driver: driver, DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", driver, err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		store := sqlstore.New(gdb)
		_ = store.Close()
		return nil, fmt.Errorf("%s automigrate: %w", driver, err)
	}
	return sqlstore.New(gdb), nil
}
