// Package db opens the PostgreSQL connection used by the postgres catalog source.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"catalogo-productos/logger"
)

const applicationName = "catalogo-productos"

// PoolSettings bounds the database/sql pool. The catalog only reads the table
// on load, so a handful of connections is plenty.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

// ConnString builds the connection string from DATABASE_URL or the DB_* variables
func ConnString() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, envOr("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, envOr("DB_SSLMODE", "disable")), nil
}

// ConnConfig parses the connection string and tags sessions with the application name
func ConnConfig() (*pgx.ConnConfig, error) {
	connStr, err := ConnString()
	if err != nil {
		return nil, err
	}
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	if _, ok := cfg.RuntimeParams["application_name"]; !ok {
		cfg.RuntimeParams["application_name"] = applicationName
	}
	return cfg, nil
}

// PoolFromEnv reads DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS and DB_CONN_MAX_IDLE_TIME
func PoolFromEnv() (PoolSettings, error) {
	pool := PoolSettings{MaxOpenConns: 4, MaxIdleConns: 1, ConnMaxIdleTime: 5 * time.Minute}

	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return PoolSettings{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %q", v)
		}
		pool.MaxOpenConns = n
	}
	if v := os.Getenv("DB_MAX_IDLE_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return PoolSettings{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNS %q", v)
		}
		pool.MaxIdleConns = n
	}
	if v := os.Getenv("DB_CONN_MAX_IDLE_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return PoolSettings{}, fmt.Errorf("invalid DB_CONN_MAX_IDLE_TIME %q: %w", v, err)
		}
		pool.ConnMaxIdleTime = d
	}
	if pool.MaxIdleConns > pool.MaxOpenConns {
		pool.MaxIdleConns = pool.MaxOpenConns
	}
	return pool, nil
}

// Open connects through the pgx stdlib driver, applies the pool settings and
// pings. The caller owns the returned handle.
func Open(ctx context.Context) (*sql.DB, error) {
	cfg, err := ConnConfig()
	if err != nil {
		return nil, err
	}
	pool, err := PoolFromEnv()
	if err != nil {
		return nil, err
	}

	conn := stdlib.OpenDB(*cfg)
	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(pool.MaxIdleConns)
	conn.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s/%s: %w", cfg.User, cfg.Host, cfg.Database, err)
	}

	logger.Log.Infof("✓ Database connection established (%s/%s, max %d conns)", cfg.Host, cfg.Database, pool.MaxOpenConns)
	return conn, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
