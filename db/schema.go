// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open connects to the database, verifies the connection and applies
// pending migrations.
func Open(dbType, url string) (*sql.DB, error) {
	var driver, dialect string
	switch dbType {
	case TypeSQLite:
		driver, dialect = "sqlite", "sqlite3"
	case TypePostgres:
		driver, dialect = "postgres", "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		// One connection so ":memory:" databases are shared and writes serialize
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// CreateSchema applies all pending migrations.
// Safe to call multiple times.
func CreateSchema(db *sql.DB, dialect string) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
