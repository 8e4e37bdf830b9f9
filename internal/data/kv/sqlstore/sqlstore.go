// Package sqlstore emulates kv.Store lists and hashes on two relational
// tables through gorm, for deployments that run postgres (or sqlite) but no
// redis.
package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
)

// ListEntry is one element of a list. Higher IDs sit closer to the head,
// which gives LPush ordering without renumbering.
type ListEntry struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ListKey string `gorm:"not null;index:idx_kv_list_key;column:list_key" json:"list_key"`
	Value   string `gorm:"not null;column:value" json:"value"`
}

func (ListEntry) TableName() string { return "kv_list_entry" }

type HashEntry struct {
	HashKey string `gorm:"primaryKey;column:hash_key" json:"hash_key"`
	Field   string `gorm:"primaryKey;column:field" json:"field"`
	Value   []byte `gorm:"not null;column:value" json:"value"`
}

func (HashEntry) TableName() string { return "kv_hash_entry" }

// Models lists the tables this store needs migrated.
func Models() []any {
	return []any{&ListEntry{}, &HashEntry{}}
}

type Store struct {
	db *gorm.DB
}

var _ kv.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LPush(ctx context.Context, key string, value string) error {
	entry := &ListEntry{ListKey: key, Value: value}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	return nil
}

func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	n, err := s.LLen(ctx, key)
	if err != nil {
		return nil, err
	}
	lo, hi, ok := kv.NormalizeRange(start, stop, n)
	if !ok {
		return []string{}, nil
	}
	var rows []ListEntry
	if err := s.db.WithContext(ctx).
		Where("list_key = ?", key).
		Order("id DESC").
		Offset(int(lo)).
		Limit(int(hi - lo + 1)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Value)
	}
	return out, nil
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&ListEntry{}).
		Where("list_key = ?", key).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("llen %s: %w", key, err)
	}
	return n, nil
}

func (s *Store) HSet(ctx context.Context, key, field string, value []byte) error {
	entry := &HashEntry{HashKey: key, Field: field, Value: value}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash_key"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(entry).Error; err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

func (s *Store) HGet(ctx context.Context, key, field string) ([]byte, bool, error) {
	var rows []HashEntry
	if err := s.db.WithContext(ctx).
		Where("hash_key = ? AND field = ?", key, field).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, false, fmt.Errorf("hget %s: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0].Value, true, nil
}

func (s *Store) HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error) {
	out := make([][]byte, len(fields))
	if len(fields) == 0 {
		return out, nil
	}
	var rows []HashEntry
	if err := s.db.WithContext(ctx).
		Where("hash_key = ? AND field IN ?", key, fields).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("hmget %s: %w", key, err)
	}
	byField := make(map[string][]byte, len(rows))
	for _, r := range rows {
		byField[r.Field] = r.Value
	}
	for i, f := range fields {
		if v, ok := byField[f]; ok {
			out[i] = v
		}
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
