package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/addressbook-backend/internal/data/kv/sqlstore"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(sqlstore.Models()...); err != nil {
		return fmt.Errorf("automigrate kv tables: %w", err)
	}
	return nil
}
