package repo

import (
	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database and migrates the schema. The default DSN is an
// in-memory sqlite database, so history lives only as long as the process.
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.RunRecord{},
		&model.HandLog{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
