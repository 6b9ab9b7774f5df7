package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartcanteen/models"
)

// OpenMySQL opens a gorm connection pool on a MySQL DSN.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to the database")
	return db, nil
}

type orderRecord struct {
	ID        string `gorm:"primaryKey"`
	Status    *string
	CreatedAt *time.Time
	Items     []orderItemRecord `gorm:"foreignKey:OrderID;references:ID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID      uint `gorm:"primaryKey"`
	OrderID string
	Name    *string
	Qty     *int
	Price   *float64
}

func (orderItemRecord) TableName() string { return "order_items" }

// GormOrderReader reads orders through gorm.
type GormOrderReader struct {
	db *gorm.DB
}

func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

// ReadOrders returns every stored order with its line items.
func (r *GormOrderReader) ReadOrders(ctx context.Context) ([]models.Order, error) {
	var records []orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return toOrders(records), nil
}

func (r *GormOrderReader) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormOrderReader) Close() {
	sqlDB, err := r.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("⚠️  Failed to close MySQL pool: %v", err)
		return
	}
	logClosed("mysql")
}

func toOrders(records []orderRecord) []models.Order {
	orders := make([]models.Order, 0, len(records))
	for _, rec := range records {
		o := models.Order{ID: rec.ID, CreatedAt: rec.CreatedAt, Items: make([]models.LineItem, 0, len(rec.Items))}
		if rec.Status != nil {
			o.Status = *rec.Status
		}
		for _, it := range rec.Items {
			o.Items = append(o.Items, models.LineItem{Name: it.Name, Qty: it.Qty, Price: it.Price})
		}
		orders = append(orders, o)
	}
	return orders
}
