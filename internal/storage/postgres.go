package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/skills"
	"github.com/skillswap/skillswap/internal/swaps"
	"github.com/skillswap/skillswap/internal/users"
)

// Connect opens a PostgreSQL connection pool wrapped in bun
func Connect(dsn string, maxConnections int) *bun.DB {
	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	return bun.NewDB(sqldb, pgdialect.New())
}

// CreateTables creates all marketplace tables
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*users.UserSchema)(nil),
		(*auth.CredentialSchema)(nil),
		(*auth.SessionSchema)(nil),
		(*skills.SkillSchema)(nil),
		(*swaps.SwapRequestSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates all necessary indexes
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	allIndexes := append([]string{}, users.UserIndexes...)
	allIndexes = append(allIndexes, auth.SessionIndexes...)
	allIndexes = append(allIndexes, skills.SkillIndexes...)
	allIndexes = append(allIndexes, swaps.SwapRequestIndexes...)

	for _, indexSQL := range allIndexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}

// Migrate creates tables and indexes in order
func Migrate(ctx context.Context, db *bun.DB) error {
	if err := CreateTables(ctx, db); err != nil {
		return err
	}
	return CreateIndexes(ctx, db)
}

// Ping verifies database connectivity for health checks
func Ping(ctx context.Context, db *bun.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
