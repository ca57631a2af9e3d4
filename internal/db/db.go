package db

import (
	"fmt"
	"log"
	"time"

	"github.com/shelfwise/catalog-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the catalog database, retrying with the backoff
// configured in DB_CONNECT_ATTEMPTS / DB_CONNECT_BACKOFF_SECONDS so the
// service can start before postgres finishes coming up.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	backoff := time.Duration(cfg.DBConnectBackoff) * time.Second

	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		gdb, err := open(cfg)
		if err == nil {
			return gdb, nil
		}
		lastErr = err

		log.Printf("catalog db %q not ready (attempt %d/%d): %v",
			cfg.DBName, attempt, cfg.DBConnectAttempts, err)
		if attempt < cfg.DBConnectAttempts {
			time.Sleep(backoff)
		}
	}

	return nil, fmt.Errorf("connect to %q after %d attempts: %w",
		cfg.DBName, cfg.DBConnectAttempts, lastErr)
}

func open(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return gdb, nil
}
