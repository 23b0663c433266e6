// Package billing talks to the PIX payment provider for paid-tier
// checkout. Only the request/response shapes matter here; the provider's
// internals are an external collaborator.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

// Charge statuses reported by the provider.
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusExpired  = "expired"
	StatusRefunded = "refunded"
)

// ErrProvider is returned when the provider rejects a request or is
// unreachable; callers surface it as a transient server error.
var ErrProvider = errors.New("billing: payment provider error")

// Charge is one PIX charge as the provider reports it.
type Charge struct {
	TxID      string    `json:"txid"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	QRCode    string    `json:"qr_code"`
	CopyPaste string    `json:"copy_paste"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ChargeRequest describes the charge to create.
type ChargeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	PayerEmail  string `json:"payer_email"`
}

// Provider creates and polls PIX charges.
type Provider interface {
	CreateCharge(ctx context.Context, creds *domain.PaymentSettings, req ChargeRequest) (*Charge, error)
	GetCharge(ctx context.Context, creds *domain.PaymentSettings, txid string) (*Charge, error)
}

// PixClient is the REST implementation of Provider.
type PixClient struct {
	http *resty.Client
}

func NewPixClient(baseURL string, timeout time.Duration) *PixClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2)

	return &PixClient{http: client}
}

func (c *PixClient) CreateCharge(ctx context.Context, creds *domain.PaymentSettings, req ChargeRequest) (*Charge, error) {
	var charge Charge

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(creds.AccessToken).
		SetHeader("X-Client-Secret", creds.ClientSecret).
		SetBody(req).
		SetResult(&charge).
		Post("/v2/pix/charges")
	if err != nil {
		return nil, fmt.Errorf("billing.CreateCharge: %w: %v", ErrProvider, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("billing.CreateCharge: %w: status %d", ErrProvider, resp.StatusCode())
	}

	return &charge, nil
}

func (c *PixClient) GetCharge(ctx context.Context, creds *domain.PaymentSettings, txid string) (*Charge, error) {
	var charge Charge

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(creds.AccessToken).
		SetHeader("X-Client-Secret", creds.ClientSecret).
		SetResult(&charge).
		Get("/v2/pix/charges/" + txid)
	if err != nil {
		return nil, fmt.Errorf("billing.GetCharge: %w: %v", ErrProvider, err)
	}
	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("billing.GetCharge: %w", domain.ErrNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("billing.GetCharge: %w: status %d", ErrProvider, resp.StatusCode())
	}

	return &charge, nil
}
