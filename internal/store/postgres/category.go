package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.List: %w", translate(err))
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		err = rows.Scan(&c.ID, &c.Name)
		if err != nil {
			return nil, fmt.Errorf("categoryRepo.List: scan: %w", err)
		}
		categories = append(categories, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.List: rows: %w", translate(err))
	}

	return categories, nil
}

func (r *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("categoryRepo.Exists: %w", translate(err))
	}

	return exists, nil
}
