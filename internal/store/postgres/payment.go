package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type PaymentSettingsRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentSettingsRepo(pool *pgxpool.Pool) *PaymentSettingsRepo {
	return &PaymentSettingsRepo{pool: pool}
}

func (r *PaymentSettingsRepo) Get(ctx context.Context, merchantID int64) (*domain.PaymentSettings, error) {
	var s domain.PaymentSettings

	err := r.pool.QueryRow(ctx,
		`SELECT merchant_id, client_secret, access_token, updated_at
		 FROM payment_settings WHERE merchant_id = $1`,
		merchantID,
	).Scan(&s.MerchantID, &s.ClientSecret, &s.AccessToken, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("paymentSettingsRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("paymentSettingsRepo.Get: %w", translate(err))
	}

	return &s, nil
}

func (r *PaymentSettingsRepo) GetPlatform(ctx context.Context) (*domain.PaymentSettings, error) {
	var s domain.PaymentSettings

	err := r.pool.QueryRow(ctx,
		`SELECT ps.merchant_id, ps.client_secret, ps.access_token, ps.updated_at
		 FROM payment_settings ps
		 JOIN merchants m ON m.id = ps.merchant_id
		 WHERE m.role = 'admin'
		 ORDER BY ps.merchant_id
		 LIMIT 1`,
	).Scan(&s.MerchantID, &s.ClientSecret, &s.AccessToken, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("paymentSettingsRepo.GetPlatform: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("paymentSettingsRepo.GetPlatform: %w", translate(err))
	}

	return &s, nil
}

func (r *PaymentSettingsRepo) Upsert(ctx context.Context, s *domain.PaymentSettings) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payment_settings (merchant_id, client_secret, access_token, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (merchant_id) DO UPDATE
		 SET client_secret = EXCLUDED.client_secret,
		     access_token  = EXCLUDED.access_token,
		     updated_at    = now()`,
		s.MerchantID, s.ClientSecret, s.AccessToken,
	)
	if err != nil {
		return fmt.Errorf("paymentSettingsRepo.Upsert: %w", translate(err))
	}

	return nil
}
