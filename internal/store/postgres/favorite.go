package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type FavoriteRepo struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepo(pool *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{pool: pool}
}

func (r *FavoriteRepo) Create(ctx context.Context, f *domain.Favorite) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO favorites (merchant_id, product_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		f.MerchantID, f.ProductID, f.CreatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("favoriteRepo.Create: %w", translate(err))
	}

	return nil
}

func (r *FavoriteRepo) ListByMerchant(ctx context.Context, merchantID int64) ([]*domain.Favorite, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, merchant_id, product_id, created_at
		 FROM favorites WHERE merchant_id = $1 ORDER BY id`,
		merchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("favoriteRepo.ListByMerchant: %w", translate(err))
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		err = rows.Scan(&f.ID, &f.MerchantID, &f.ProductID, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("favoriteRepo.ListByMerchant: scan: %w", err)
		}
		favorites = append(favorites, &f)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("favoriteRepo.ListByMerchant: rows: %w", translate(err))
	}

	return favorites, nil
}

func (r *FavoriteRepo) ListProductIDs(ctx context.Context, merchantID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id FROM favorites WHERE merchant_id = $1 ORDER BY product_id`,
		merchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("favoriteRepo.ListProductIDs: %w", translate(err))
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("favoriteRepo.ListProductIDs: scan: %w", err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("favoriteRepo.ListProductIDs: rows: %w", translate(err))
	}

	return ids, nil
}

func (r *FavoriteRepo) Delete(ctx context.Context, merchantID, productID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE merchant_id = $1 AND product_id = $2`,
		merchantID, productID,
	)
	if err != nil {
		return fmt.Errorf("favoriteRepo.Delete: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favoriteRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
