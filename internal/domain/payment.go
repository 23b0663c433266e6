package domain

import (
	"context"
	"time"
)

// PaymentSettings holds the per-merchant payment-provider credential pair.
// In practice only the administrator account carries one.
type PaymentSettings struct {
	MerchantID   int64     `json:"merchant_id"`
	ClientSecret string    `json:"client_secret"`
	AccessToken  string    `json:"access_token"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PaymentSettingsRepository interface {
	Get(ctx context.Context, merchantID int64) (*PaymentSettings, error)
	// GetPlatform returns the credential pair of the administrator
	// account, which fronts all paid-tier checkouts.
	GetPlatform(ctx context.Context) (*PaymentSettings, error)
	Upsert(ctx context.Context, s *PaymentSettings) error
}
