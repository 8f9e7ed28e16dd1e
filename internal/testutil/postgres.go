// Package testutil provides throw-away PostgreSQL schemas for storage tests.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/infrastructure/database"
)

// EnvDatabaseURL trỏ tới một PostgreSQL dùng cho test; không set thì test bị skip
const EnvDatabaseURL = "BOOKSTORE_TEST_DATABASE_URL"

// NewPostgres tạo schema riêng cho test, apply DDL và trả về DB đã connect.
// Schema bị drop khi test kết thúc.
func NewPostgres(t *testing.T) *database.PostgresDB {
	t.Helper()

	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping storage test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize())
	require.NoError(t, err)
	require.NoError(t, admin.Close(ctx))

	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	cfg.MinConns = 1
	cfg.MaxConns = 10
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	db := &database.PostgresDB{
		Pool:   pool,
		Config: &database.DBConfig{MinConns: 1, MaxConns: 10, RuntimeParams: map[string]string{"search_path": schema}},
	}
	require.NoError(t, db.EnsureSchema(ctx))

	t.Cleanup(func() {
		db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, url)
		if err != nil {
			t.Logf("drop schema %s: %v", schema, err)
			return
		}
		defer conn.Close(ctx)
		if _, err := conn.Exec(ctx, "DROP SCHEMA "+pgx.Identifier{schema}.Sanitize()+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	return db
}

// SeedAuthor inserts an author and returns its id.
func SeedAuthor(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), "INSERT INTO authors (name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), "INSERT INTO categories (name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// Count runs SELECT count(*) FROM table [WHERE ...].
func Count(t *testing.T, pool *pgxpool.Pool, from string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT count(*) FROM "+from, args...).Scan(&n))
	return n
}
