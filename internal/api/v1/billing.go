package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/billing"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

const actionCheckoutCreate = "checkout.create"

type CreateCheckoutInput struct {
	Body struct {
		Amount      string `json:"amount" minLength:"1" doc:"Charge amount as a decimal string, e.g. \"29.90\""`
		Description string `json:"description,omitempty" maxLength:"255" doc:"Charge description shown to the payer"`
	}
}

type CreateCheckoutOutput struct {
	Body *billing.Charge
}

type GetChargeInput struct {
	TxID string `path:"txid" minLength:"1" maxLength:"64" doc:"Provider transaction ID"`
}

type GetChargeOutput struct {
	Body *billing.Charge
}

// RegisterBillingRoutes wires PIX checkout. All charges run against the
// platform credential pair, so a missing pair disables checkout entirely.
func RegisterBillingRoutes(api huma.API, store DataStore, provider PaymentProvider, auditor Auditor) {
	huma.Register(api, huma.Operation{
		OperationID: "create-checkout",
		Method:      http.MethodPost,
		Path:        "/billing/checkout",
		Summary:     "Create a PIX charge for the caller",
		Tags:        []string{"Billing"},
	}, func(ctx context.Context, input *CreateCheckoutInput) (*CreateCheckoutOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := domain.ValidatePrice(input.Body.Amount); err != nil {
			return nil, huma.Error400BadRequest("amount must be a non-negative decimal with at most 2 fraction digits")
		}

		creds, err := store.PaymentSettings().GetPlatform(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error503ServiceUnavailable("checkout is not configured")
			}
			return nil, storeError("failed to load payment credentials", err)
		}

		merchant, err := store.Merchants().GetByID(ctx, merchantID)
		if err != nil {
			return nil, storeError("failed to load account", err)
		}

		charge, err := provider.CreateCharge(ctx, creds, billing.ChargeRequest{
			Amount:      input.Body.Amount,
			Description: input.Body.Description,
			PayerEmail:  merchant.Email,
		})
		if err != nil {
			return nil, huma.Error502BadGateway("payment provider rejected the charge", err)
		}

		auditor.Record(ctx, merchantID, actionCheckoutCreate,
			fmt.Sprintf("created PIX charge %s for %s", charge.TxID, charge.Amount),
			middleware.ClientIPFromContext(ctx))

		return &CreateCheckoutOutput{Body: charge}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-charge",
		Method:      http.MethodGet,
		Path:        "/billing/charges/{txid}",
		Summary:     "Poll a PIX charge's status",
		Tags:        []string{"Billing"},
	}, func(ctx context.Context, input *GetChargeInput) (*GetChargeOutput, error) {
		if _, ok := middleware.MerchantIDFromContext(ctx); !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		creds, err := store.PaymentSettings().GetPlatform(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error503ServiceUnavailable("checkout is not configured")
			}
			return nil, storeError("failed to load payment credentials", err)
		}

		charge, err := provider.GetCharge(ctx, creds, input.TxID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("charge not found")
			}
			return nil, huma.Error502BadGateway("payment provider unavailable", err)
		}

		return &GetChargeOutput{Body: charge}, nil
	})
}
