package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/database"
)

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list:"
	authorListKey        = authorListKeyPrefix + "all"
)

// postgresRepository implements RepositoryInterface
// Uses pgx for PostgreSQL and Redis for caching
type postgresRepository struct {
	db    database.DBTX
	cache cache.Cache
	ttl   time.Duration
}

// NewPostgresRepository creates a new author repository instance
// Dependency injection pattern - receives pool and cache from container
func NewPostgresRepository(db database.DBTX, c cache.Cache, ttl time.Duration) RepositoryInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{db: db, cache: c, ttl: ttl}
}

// Create inserts new author and invalidates list cache
func (r *postgresRepository) Create(ctx context.Context, name string, bio *string) (*model.Author, error) {
	var a model.Author
	err := r.db.QueryRow(ctx,
		`INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id, name, bio`,
		name, bio,
	).Scan(&a.ID, &a.Name, &a.Bio)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", database.TranslateError(err))
	}

	cache.Invalidate(ctx, r.cache, authorListKeyPrefix+"*")

	return &a, nil
}

// GetByID retrieves author by id with caching
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, bool, error) {
	key := authorCacheKeyPrefix + strconv.FormatInt(id, 10)

	return cache.GetOrLoad(ctx, r.cache, key, r.ttl, func(ctx context.Context) (*model.Author, bool, error) {
		var a model.Author
		err := r.db.QueryRow(ctx, `SELECT id, name, bio FROM authors WHERE id = $1`, id).
			Scan(&a.ID, &a.Name, &a.Bio)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("failed to get author by id: %w", err)
		}
		return &a, true, nil
	})
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	authors, _, err := cache.GetOrLoad(ctx, r.cache, authorListKey, r.ttl, func(ctx context.Context) ([]model.Author, bool, error) {
		rows, err := r.db.Query(ctx, `SELECT id, name, bio FROM authors ORDER BY name ASC, id ASC`)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list authors: %w", err)
		}
		defer rows.Close()

		authors := []model.Author{}
		for rows.Next() {
			var a model.Author
			if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
				return nil, false, fmt.Errorf("failed to scan author: %w", err)
			}
			authors = append(authors, a)
		}
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("failed to iterate authors: %w", err)
		}
		return authors, true, nil
	})
	return authors, err
}
