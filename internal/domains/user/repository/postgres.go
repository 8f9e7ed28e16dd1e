package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookstore-catalog/internal/domains/user"
	"bookstore-catalog/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) user.Repository {
	return &postgresRepository{db: db}
}

// ========================================
// BASIC CRUD
// ========================================

func (r *postgresRepository) Create(ctx context.Context, username, email string) (*user.User, error) {
	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, username, email
	`

	var u user.User
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&u.ID, &u.Username, &u.Email); err != nil {
		return nil, fmt.Errorf("create user: %w", database.TranslateError(err))
	}
	return &u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*user.User, bool, error) {
	query := `SELECT id, username, email FROM users WHERE id = $1`

	var u user.User
	if err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find user %d: %w", id, err)
	}
	return &u, true, nil
}
