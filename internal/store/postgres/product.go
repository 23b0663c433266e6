package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Prices are NUMERIC(10,2) in the table and travel as text through the
// driver, so a created "12.50" reads back as "12.50" forever.
const productColumns = `id, merchant_id, category_id, name, price::text, image_url, description, tags, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (merchant_id, category_id, name, price, image_url, description, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)
		 RETURNING id, price::text`,
		p.MerchantID, p.CategoryID, p.Name, p.Price, p.ImageURL,
		nilIfEmpty(p.Description), p.Tags, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.Price)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", translate(err))
	}

	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}

	return p, nil
}

func (r *ProductRepo) ListByMerchant(ctx context.Context, merchantID int64) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE merchant_id = $1 ORDER BY id`,
		merchantID,
	)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListByMerchant: %w", translate(err))
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("productRepo.ListByMerchant: scan: %w", scanErr)
		}
		products = append(products, p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListByMerchant: rows: %w", translate(err))
	}

	return products, nil
}

// Update carries the ownership predicate inside the UPDATE itself; there
// is no read-then-write window. A zero-row result is disambiguated with an
// existence probe so callers can tell forbidden from not-found.
func (r *ProductRepo) Update(ctx context.Context, id, merchantID int64, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products SET
		     name        = COALESCE($1, name),
		     price       = COALESCE($2::numeric, price),
		     image_url   = COALESCE($3, image_url),
		     category_id = COALESCE($4, category_id),
		     description = COALESCE($5, description),
		     tags        = COALESCE($6, tags),
		     updated_at  = now()
		 WHERE id = $7 AND merchant_id = $8
		 RETURNING `+productColumns,
		patch.Name, patch.Price, patch.ImageURL, patch.CategoryID,
		patch.Description, patch.Tags, id, merchantID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("productRepo.Update: %w", r.ownershipError(ctx, id))
	}
	if err != nil {
		return nil, fmt.Errorf("productRepo.Update: %w", err)
	}

	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id, merchantID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND merchant_id = $2`,
		id, merchantID,
	)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("productRepo.Delete: %w", r.ownershipError(ctx, id))
	}

	return nil
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("productRepo.Count: %w", translate(err))
	}

	return n, nil
}

func (r *ProductRepo) CountByMerchant(ctx context.Context) ([]domain.MerchantProductCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.business_name, count(p.id)
		 FROM merchants m
		 LEFT JOIN products p ON p.merchant_id = m.id
		 GROUP BY m.id, m.business_name
		 ORDER BY m.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("productRepo.CountByMerchant: %w", translate(err))
	}
	defer rows.Close()

	var counts []domain.MerchantProductCount
	for rows.Next() {
		var c domain.MerchantProductCount
		err = rows.Scan(&c.MerchantID, &c.BusinessName, &c.Products)
		if err != nil {
			return nil, fmt.Errorf("productRepo.CountByMerchant: scan: %w", err)
		}
		counts = append(counts, c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("productRepo.CountByMerchant: rows: %w", translate(err))
	}

	return counts, nil
}

// ownershipError reports ErrForbidden when the row exists under another
// merchant, ErrNotFound when it does not exist at all.
func (r *ProductRepo) ownershipError(ctx context.Context, id int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return translate(err)
	}
	if exists {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var description *string

	err := row.Scan(&p.ID, &p.MerchantID, &p.CategoryID, &p.Name, &p.Price,
		&p.ImageURL, &description, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}

	p.Description = derefStr(description)

	return &p, nil
}
