package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type MerchantRepo struct {
	pool *pgxpool.Pool
}

func NewMerchantRepo(pool *pgxpool.Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

const merchantColumns = `id, email, password_hash, business_name, phone, banner_url, logo_url, theme_color, role, created_at, updated_at`

func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO merchants (email, password_hash, business_name, phone, banner_url, logo_url, theme_color, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		m.Email, m.PasswordHash, m.BusinessName, m.Phone,
		nilIfEmpty(m.BannerURL), nilIfEmpty(m.LogoURL),
		m.ThemeColor, m.Role, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("merchantRepo.Create: %w", translate(err))
	}

	return nil
}

func (r *MerchantRepo) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	m, err := scanMerchant(r.pool.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("merchantRepo.GetByID: %w", err)
	}

	return m, nil
}

func (r *MerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	m, err := scanMerchant(r.pool.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE email = $1`,
		strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("merchantRepo.GetByEmail: %w", err)
	}

	return m, nil
}

func (r *MerchantRepo) UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.Merchant, error) {
	m, err := scanMerchant(r.pool.QueryRow(ctx,
		`UPDATE merchants SET
		     business_name = COALESCE($1, business_name),
		     phone         = COALESCE($2, phone),
		     theme_color   = COALESCE($3, theme_color),
		     logo_url      = COALESCE($4, logo_url),
		     updated_at    = now()
		 WHERE id = $5
		 RETURNING `+merchantColumns,
		patch.BusinessName, patch.Phone, patch.ThemeColor, patch.LogoURL, id))
	if err != nil {
		return nil, fmt.Errorf("merchantRepo.UpdateProfile: %w", err)
	}

	return m, nil
}

func (r *MerchantRepo) UpdateBanner(ctx context.Context, id int64, bannerURL string) (*domain.Merchant, error) {
	m, err := scanMerchant(r.pool.QueryRow(ctx,
		`UPDATE merchants SET banner_url = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+merchantColumns,
		nilIfEmpty(bannerURL), id))
	if err != nil {
		return nil, fmt.Errorf("merchantRepo.UpdateBanner: %w", err)
	}

	return m, nil
}

func (r *MerchantRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM merchants`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("merchantRepo.Count: %w", translate(err))
	}

	return n, nil
}

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var m domain.Merchant
	var banner, logo *string

	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.BusinessName, &m.Phone,
		&banner, &logo, &m.ThemeColor, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}

	m.BannerURL = derefStr(banner)
	m.LogoURL = derefStr(logo)

	return &m, nil
}
