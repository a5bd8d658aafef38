package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnStringPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/catalogo")
	t.Setenv("DB_HOST", "ignored")

	got, err := ConnString()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@db:5432/catalogo", got)
}

func TestConnStringFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "catalogo")
	t.Setenv("DB_PASSWORD", "secreto")
	t.Setenv("DB_NAME", "tienda")
	t.Setenv("DB_SSLMODE", "")

	got, err := ConnString()
	require.NoError(t, err)
	require.Equal(t, "host=localhost port=5432 user=catalogo password=secreto dbname=tienda sslmode=disable", got)
}

func TestConnStringRequiresVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := ConnString()
	require.Error(t, err)
}

func TestConnConfigSetsApplicationName(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "catalogo")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "tienda")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := ConnConfig()
	require.NoError(t, err)
	require.Equal(t, "db.internal", cfg.Host)
	require.Equal(t, uint16(6543), cfg.Port)
	require.Equal(t, "tienda", cfg.Database)
	require.Equal(t, "catalogo-productos", cfg.RuntimeParams["application_name"])

	t.Setenv("DATABASE_URL", "postgres://u@db:5432/catalogo?application_name=reportes")
	cfg, err = ConnConfig()
	require.NoError(t, err)
	require.Equal(t, "reportes", cfg.RuntimeParams["application_name"], "an explicit name is kept")
}

func TestPoolFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "")

	pool, err := PoolFromEnv()
	require.NoError(t, err)
	require.Equal(t, PoolSettings{MaxOpenConns: 4, MaxIdleConns: 1, ConnMaxIdleTime: 5 * time.Minute}, pool)

	t.Setenv("DB_MAX_OPEN_CONNS", "2")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "30s")
	pool, err = PoolFromEnv()
	require.NoError(t, err)
	require.Equal(t, PoolSettings{MaxOpenConns: 2, MaxIdleConns: 2, ConnMaxIdleTime: 30 * time.Second}, pool)

	t.Setenv("DB_MAX_OPEN_CONNS", "cero")
	_, err = PoolFromEnv()
	require.Error(t, err)
}
