package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

func TestValidatePrice(t *testing.T) {
	t.Parallel()

	valid := []string{"0", "0.5", "0.50", "12.50", "12", "99999999.99", "7.1"}
	for _, price := range valid {
		assert.NoError(t, domain.ValidatePrice(price), "price %q should be accepted", price)
	}

	invalid := []string{"", "-1", "-12.50", "12.505", "abc", "12,50", "1e3", ".50", "12.", "123456789.00"}
	for _, price := range invalid {
		err := domain.ValidatePrice(price)
		require.Error(t, err, "price %q should be rejected", price)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	}
}

func TestValidateTags(t *testing.T) {
	t.Parallel()

	assert.NoError(t, domain.ValidateTags(nil))
	assert.NoError(t, domain.ValidateTags([]string{"popular", "spicy", "out-of-stock"}))

	err := domain.ValidateTags([]string{"popular", "glutenfree"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	// Tags are case-sensitive.
	assert.Error(t, domain.ValidateTags([]string{"Popular"}))
}

func TestNewProduct(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		p, err := domain.NewProduct(7, 2, "X-Burger", "12.50", "", "com queijo", []string{"popular"})
		require.NoError(t, err)
		assert.Equal(t, "12.50", p.Price)
		assert.Equal(t, int64(7), p.MerchantID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("rejects_missing_fields", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewProduct(7, 2, "", "12.50", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrInvalid)

		_, err = domain.NewProduct(7, 0, "X-Burger", "12.50", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrInvalid)

		_, err = domain.NewProduct(7, 2, "X-Burger", "bogus", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestNewMerchant(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		m, err := domain.NewMerchant(" Dona@Cantina.COM ", "Cantina da Vila", "")
		require.NoError(t, err)
		assert.Equal(t, "dona@cantina.com", m.Email)
		assert.Equal(t, domain.RoleMerchant, m.Role)
		assert.Equal(t, domain.DefaultThemeColor, m.ThemeColor)
	})

	t.Run("rejects_bad_input", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewMerchant("no-at-sign", "Cantina da Vila", "")
		assert.Error(t, err)

		_, err = domain.NewMerchant("dona@cantina.com", "  ", "")
		assert.Error(t, err)
	})
}
