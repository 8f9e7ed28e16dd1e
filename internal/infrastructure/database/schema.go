package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the catalog DDL. Every statement is idempotent.
func Schema() string {
	return schemaSQL
}

// EnsureSchema tạo bảng và index nếu chưa có (bootstrap, không phải migration)
// Exec không có args dùng simple protocol nên chạy được nhiều statement một lần
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	log.Info().Msg("[DATABASE] Schema ensured")
	return nil
}
