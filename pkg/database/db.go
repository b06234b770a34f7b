package database

import (
	"fmt"

	"github.com/mdqapps/turnos-api/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes how the database connection is opened
type Options struct {
	// DatabaseURL selects Postgres; when empty a SQLite file at DataPath is used
	DatabaseURL string
	DataPath    string
	LogLevel    logger.LogLevel
}

// InitDB opens the database connection and migrates the schema
func InitDB(opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	}

	var dialector gorm.Dialector
	if opts.DatabaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "turnos.db"
		}
		dialector = sqlite.Open(dbPath)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Location{},
		&models.Shift{},
		&models.Snapshot{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
