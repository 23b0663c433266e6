package v1

import (
	"context"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/billing"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Merchants() domain.MerchantRepository
	Products() domain.ProductRepository
	Categories() domain.CategoryRepository
	Favorites() domain.FavoriteRepository
	Visits() domain.VisitRepository
	Audit() domain.AuditRepository
	PaymentSettings() domain.PaymentSettingsRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, businessName, phone string) (*domain.Merchant, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// Auditor appends audit entries after successful writes. *audit.Recorder
// satisfies this interface; failures never propagate to the caller.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, details, ip string)
}

// PaymentProvider abstracts the PIX provider for handler testing.
// *billing.PixClient satisfies this interface.
type PaymentProvider interface {
	CreateCharge(ctx context.Context, creds *domain.PaymentSettings, req billing.ChargeRequest) (*billing.Charge, error)
	GetCharge(ctx context.Context, creds *domain.PaymentSettings, txid string) (*billing.Charge, error)
}
