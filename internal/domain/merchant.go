package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultThemeColor is applied to every merchant that never customized
// their public menu.
const DefaultThemeColor = "#7c3aed"

// Merchant roles. The administrator role is an explicit attribute set at
// provisioning, never derived from the login handle.
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// Merchant is a registered business account. It owns products and the
// visual customization of its public menu page.
type Merchant struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BusinessName string    `json:"business_name"`
	Phone        string    `json:"phone"`
	BannerURL    string    `json:"banner_url,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	ThemeColor   string    `json:"theme_color"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMerchant creates a Merchant with validated required fields and defaults.
// The password hash is set by the auth service, not here.
func NewMerchant(email, businessName, phone string) (*Merchant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("merchant: valid email is required")
	}
	if strings.TrimSpace(businessName) == "" {
		return nil, errors.New("merchant: business name is required")
	}

	now := time.Now()
	return &Merchant{
		Email:        email,
		BusinessName: businessName,
		Phone:        phone,
		ThemeColor:   DefaultThemeColor,
		Role:         RoleMerchant,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ProfilePatch holds the merchant-editable profile fields. Nil means
// "leave unchanged"; an empty string clears the field where allowed.
type ProfilePatch struct {
	BusinessName *string
	Phone        *string
	ThemeColor   *string
	LogoURL      *string
}

type MerchantRepository interface {
	Create(ctx context.Context, m *Merchant) error
	GetByID(ctx context.Context, id int64) (*Merchant, error)
	GetByEmail(ctx context.Context, email string) (*Merchant, error)
	UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) (*Merchant, error)
	UpdateBanner(ctx context.Context, id int64, bannerURL string) (*Merchant, error)
	Count(ctx context.Context) (int64, error)
}
