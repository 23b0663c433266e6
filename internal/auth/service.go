package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials    = errors.New("auth: invalid credentials")
	ErrMerchantAlreadyExists = errors.New("auth: merchant already exists")
	ErrMerchantNotFound      = errors.New("auth: merchant not found")
)

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service provides registration, login and token refresh.
type Service struct {
	merchants  domain.MerchantRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(merchants domain.MerchantRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		merchants:  merchants,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new merchant account with the default role and theme.
// The password is hashed with argon2id before storage. The email handle is
// globally unique; a duplicate surfaces as ErrMerchantAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, businessName, phone string) (*domain.Merchant, error) {
	merchant, err := domain.NewMerchant(email, businessName, phone)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w: %v", domain.ErrInvalid, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	merchant.PasswordHash = hash

	if err := s.merchants.Create(ctx, merchant); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("auth.Register: %w", ErrMerchantAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return merchant, nil
}

// Login validates email/password and returns access + refresh JWT tokens.
func (s *Service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	merchant, err := s.merchants.GetByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	if !verifyPassword(password, merchant.PasswordHash) {
		return "", "", fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	accessToken, err = IssueAccessToken(s.jwtSecret, merchant.ID, merchant.Role, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}

	refreshToken, err = IssueRefreshToken(s.jwtSecret, merchant.ID, merchant.Role, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}

	return accessToken, refreshToken, nil
}

// RefreshToken validates a refresh token and issues a new access token
// with the merchant's current role.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ValidateToken(s.jwtSecret, refreshToken)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrInvalidToken)
	}

	merchantID, err := strconv.ParseInt(claims.MerchantID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: invalid merchant id: %w", ErrInvalidToken)
	}

	merchant, err := s.merchants.GetByID(ctx, merchantID)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrMerchantNotFound)
	}

	newAccess, err := IssueAccessToken(s.jwtSecret, merchant.ID, merchant.Role, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	return newAccess, nil
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Constant-time comparison to prevent timing attacks.
	if len(computed) != len(expectedHash) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expectedHash[i]
	}

	return diff == 0
}
