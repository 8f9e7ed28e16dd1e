package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore-catalog/internal/domains/category"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/database"
)

const (
	keyPrefix     = "category:"
	listKeyPrefix = "categories:list:"
	listKey       = listKeyPrefix + "all"
)

type postgresRepository struct {
	db    database.DBTX
	cache cache.Cache
	ttl   time.Duration
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(db database.DBTX, c cache.Cache, ttl time.Duration) category.CategoryRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{
		db:    db,
		cache: c,
		ttl:   ttl,
	}
}

func (r *postgresRepository) Create(ctx context.Context, name string) (*category.Category, error) {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id, name`

	var c category.Category
	if err := r.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, fmt.Errorf("create category: %w", database.TranslateError(err))
	}

	// list cache không còn đúng
	cache.Invalidate(ctx, r.cache, listKeyPrefix+"*")

	return &c, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*category.Category, bool, error) {
	const query = `SELECT id, name FROM categories WHERE id = $1`

	return cache.GetOrLoad(ctx, r.cache, keyPrefix+strconv.FormatInt(id, 10), r.ttl,
		func(ctx context.Context) (*category.Category, bool, error) {
			var c category.Category
			if err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, false, nil
				}
				return nil, false, fmt.Errorf("find category %d: %w", id, err)
			}
			return &c, true, nil
		})
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]category.Category, error) {
	const query = `SELECT id, name FROM categories ORDER BY name ASC, id ASC`

	categories, _, err := cache.GetOrLoad(ctx, r.cache, listKey, r.ttl,
		func(ctx context.Context) ([]category.Category, bool, error) {
			rows, err := r.db.Query(ctx, query)
			if err != nil {
				return nil, false, fmt.Errorf("list categories: %w", err)
			}
			out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[category.Category])
			if err != nil {
				return nil, false, fmt.Errorf("scan categories: %w", err)
			}
			if out == nil {
				out = []category.Category{}
			}
			return out, true, nil
		})
	return categories, err
}
