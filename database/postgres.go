package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"smartcanteen/models"
)

// Connect sets up the Postgres connection pool and checks it is reachable.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("Successfully connected to the database")
	return pool, nil
}

// One row per order line; orders without lines come back once with has_item = false.
const ordersQuery = `
	SELECT o.id::text, o.status, o.created_at,
	       oi.id IS NOT NULL AS has_item, oi.name, oi.qty, oi.price
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	ORDER BY o.id, oi.id
`

// PostgresOrderReader reads orders and their lines from Postgres.
type PostgresOrderReader struct {
	db *pgxpool.Pool
}

func NewPostgresOrderReader(db *pgxpool.Pool) *PostgresOrderReader {
	return &PostgresOrderReader{db: db}
}

// ReadOrders returns every stored order with its line items.
func (r *PostgresOrderReader) ReadOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, ordersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *PostgresOrderReader) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresOrderReader) Close() {
	if r.db != nil {
		r.db.Close()
		logClosed("postgres")
	}
}

type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// collectOrders folds joined order/line rows into orders, keeping first-seen order.
func collectOrders(rows rowScanner) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	index := make(map[string]int)

	for rows.Next() {
		var (
			id        string
			status    *string
			createdAt *time.Time
			hasItem   bool
			name      *string
			qty       *int
			price     *float64
		)
		if err := rows.Scan(&id, &status, &createdAt, &hasItem, &name, &qty, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		i, ok := index[id]
		if !ok {
			o := models.Order{ID: id, CreatedAt: createdAt, Items: []models.LineItem{}}
			if status != nil {
				o.Status = *status
			}
			orders = append(orders, o)
			i = len(orders) - 1
			index[id] = i
		}
		if hasItem {
			orders[i].Items = append(orders[i].Items, models.LineItem{Name: name, Qty: qty, Price: price})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order rows: %w", err)
	}

	return orders, nil
}
