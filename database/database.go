package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"smartcanteen/models"
)

// OrderReader reads order snapshots from a storage backend.
type OrderReader interface {
	ReadOrders(ctx context.Context) ([]models.Order, error)
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the configured driver and returns its order reader.
// The caller owns the reader and must Close it.
func Open(ctx context.Context, driver, databaseURL string) (OrderReader, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is not set")
	}

	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		pool, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresOrderReader(pool), nil
	case "mysql":
		db, err := OpenMySQL(databaseURL)
		if err != nil {
			return nil, err
		}
		return NewGormOrderReader(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func logClosed(driver string) {
	log.Printf("Database connection pool closed (%s)", driver)
}
