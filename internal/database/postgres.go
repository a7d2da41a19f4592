package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storelab/catalog-service/internal/config"
)

const (
	connectTimeout  = 5 * time.Second
	connMaxLifetime = 5 * time.Minute
)

// Open establishes the PostgreSQL connection pool and wraps it in GORM. The
// pool is created through lib/pq so that driver errors keep their concrete
// *pq.Error type.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("initialize orm: %w", err)
	}

	return db, nil
}
