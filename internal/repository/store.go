package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"terrarium-api/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store wraps the database connection and owns both tables.
type Store struct {
	orm *gorm.DB
}

// Open connects to the database selected by the normalized URL and runs the
// schema migration once. Supported schemes: "postgresql://" (server-backed)
// and "sqlite://<path>" (file-backed); a bare path is treated as a SQLite
// file. Migration happens here, at startup, never on the request path.
func Open(databaseURL string) (*Store, error) {
	g, err := openORM(databaseURL)
	if err != nil {
		return nil, err
	}
	if err := g.AutoMigrate(&models.SensorReading{}, &models.DeviceCommand{}); err != nil {
		_ = closeORM(g)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{orm: g}, nil
}

func openORM(databaseURL string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	switch {
	case strings.HasPrefix(databaseURL, "postgresql://"):
		return gorm.Open(postgres.Open(databaseURL), cfg)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return gorm.Open(sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), cfg)
	default:
		return gorm.Open(sqlite.Open(databaseURL), cfg)
	}
}

func closeORM(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Close closes the underlying SQL connection pool.
func (s *Store) Close() error { return closeORM(s.orm) }
