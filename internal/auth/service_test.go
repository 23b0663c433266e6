package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/auth"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

// mockMerchantRepo is a func-field fake for the merchant repository.
type mockMerchantRepo struct {
	createFunc     func(ctx context.Context, m *domain.Merchant) error
	getByIDFunc    func(ctx context.Context, id int64) (*domain.Merchant, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.Merchant, error)
}

func (m *mockMerchantRepo) Create(ctx context.Context, mc *domain.Merchant) error {
	return m.createFunc(ctx, mc)
}

func (m *mockMerchantRepo) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockMerchantRepo) UpdateProfile(context.Context, int64, domain.ProfilePatch) (*domain.Merchant, error) {
	panic("not implemented")
}

func (m *mockMerchantRepo) UpdateBanner(context.Context, int64, string) (*domain.Merchant, error) {
	panic("not implemented")
}

func (m *mockMerchantRepo) Count(context.Context) (int64, error) {
	panic("not implemented")
}

const testSecret = "test-secret-key-very-long-and-secure"

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("hashes_password_and_defaults_role", func(t *testing.T) {
		t.Parallel()

		var stored *domain.Merchant
		repo := &mockMerchantRepo{
			createFunc: func(_ context.Context, m *domain.Merchant) error {
				m.ID = 7
				stored = m
				return nil
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		merchant, err := svc.Register(context.Background(), "Dona@Cantina.com", "s3cret-pass", "Cantina da Vila", "")
		require.NoError(t, err)

		assert.Equal(t, "dona@cantina.com", merchant.Email, "email handle is lowercased")
		assert.Equal(t, domain.RoleMerchant, merchant.Role)
		assert.Equal(t, domain.DefaultThemeColor, merchant.ThemeColor)
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotContains(t, stored.PasswordHash, "s3cret-pass", "password must never be stored in clear")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		t.Parallel()

		repo := &mockMerchantRepo{
			createFunc: func(_ context.Context, _ *domain.Merchant) error {
				return domain.ErrConflict
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, err := svc.Register(context.Background(), "dona@cantina.com", "s3cret-pass", "Cantina da Vila", "")
		assert.ErrorIs(t, err, auth.ErrMerchantAlreadyExists)
	})

	t.Run("invalid_email", func(t *testing.T) {
		t.Parallel()

		repo := &mockMerchantRepo{}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, err := svc.Register(context.Background(), "not-an-email", "s3cret-pass", "Cantina da Vila", "")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	// Register once to get a real hash, then reuse it for the login runs.
	var hash string
	setupRepo := &mockMerchantRepo{
		createFunc: func(_ context.Context, m *domain.Merchant) error {
			hash = m.PasswordHash
			return nil
		},
	}
	setupSvc := auth.NewService(setupRepo, testSecret, 15*time.Minute, 7*24*time.Hour)
	_, err := setupSvc.Register(context.Background(), "dona@cantina.com", "s3cret-pass", "Cantina da Vila", "")
	require.NoError(t, err)

	merchant := &domain.Merchant{
		ID:           7,
		Email:        "dona@cantina.com",
		PasswordHash: hash,
		Role:         domain.RoleMerchant,
	}

	t.Run("valid_credentials", func(t *testing.T) {
		t.Parallel()

		repo := &mockMerchantRepo{
			getByEmailFunc: func(_ context.Context, email string) (*domain.Merchant, error) {
				assert.Equal(t, "dona@cantina.com", email)
				return merchant, nil
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		access, refresh, err := svc.Login(context.Background(), "dona@cantina.com", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, access)
		require.NotEmpty(t, refresh)

		claims, err := auth.ValidateToken(testSecret, access)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.MerchantID)
		assert.Equal(t, domain.RoleMerchant, claims.Role)
	})

	t.Run("wrong_password", func(t *testing.T) {
		t.Parallel()

		repo := &mockMerchantRepo{
			getByEmailFunc: func(_ context.Context, _ string) (*domain.Merchant, error) {
				return merchant, nil
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, _, err := svc.Login(context.Background(), "dona@cantina.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		t.Parallel()

		repo := &mockMerchantRepo{
			getByEmailFunc: func(_ context.Context, _ string) (*domain.Merchant, error) {
				return nil, domain.ErrNotFound
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, _, err := svc.Login(context.Background(), "nobody@cantina.com", "s3cret-pass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "unknown emails look identical to wrong passwords")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("uses_current_role", func(t *testing.T) {
		t.Parallel()

		refresh, err := auth.IssueRefreshToken(testSecret, 7, domain.RoleMerchant, time.Hour)
		require.NoError(t, err)

		// The merchant was promoted since the refresh token was issued.
		repo := &mockMerchantRepo{
			getByIDFunc: func(_ context.Context, id int64) (*domain.Merchant, error) {
				assert.Equal(t, int64(7), id)
				return &domain.Merchant{ID: 7, Role: domain.RoleAdmin}, nil
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		access, err := svc.RefreshToken(context.Background(), refresh)
		require.NoError(t, err)

		claims, err := auth.ValidateToken(testSecret, access)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, claims.Role, "new access token carries the role read from the store")
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		t.Parallel()

		access, err := auth.IssueAccessToken(testSecret, 7, domain.RoleMerchant, time.Hour)
		require.NoError(t, err)

		repo := &mockMerchantRepo{}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, err = svc.RefreshToken(context.Background(), access)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("deleted_merchant", func(t *testing.T) {
		t.Parallel()

		refresh, err := auth.IssueRefreshToken(testSecret, 7, domain.RoleMerchant, time.Hour)
		require.NoError(t, err)

		repo := &mockMerchantRepo{
			getByIDFunc: func(_ context.Context, _ int64) (*domain.Merchant, error) {
				return nil, domain.ErrNotFound
			},
		}
		svc := auth.NewService(repo, testSecret, 15*time.Minute, 7*24*time.Hour)

		_, err = svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, auth.ErrMerchantNotFound)
	})
}
