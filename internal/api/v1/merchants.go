package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

const (
	actionProfileUpdate = "profile.update"
	actionBannerUpdate  = "profile.banner"
)

type GetProfileInput struct{}

type GetProfileOutput struct {
	Body *domain.Merchant
}

type UpdateProfileInput struct {
	Body struct {
		BusinessName *string `json:"business_name,omitempty" maxLength:"255" doc:"Business display name"`
		Phone        *string `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
		ThemeColor   *string `json:"theme_color,omitempty" maxLength:"16" doc:"Menu accent color, e.g. \"#7c3aed\""`
		LogoURL      *string `json:"logo_url,omitempty" maxLength:"1024" doc:"Logo image URL"`
	}
}

type UpdateProfileOutput struct {
	Body *domain.Merchant
}

type UpdateBannerInput struct {
	Body struct {
		BannerURL string `json:"banner_url" maxLength:"1024" doc:"Banner image URL; empty clears the banner"`
	}
}

type UpdateBannerOutput struct {
	Body *domain.Merchant
}

func RegisterMerchantRoutes(api huma.API, store DataStore, auditor Auditor) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/user/profile",
		Summary:     "Read the caller's own profile",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *GetProfileInput) (*GetProfileOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		merchant, err := store.Merchants().GetByID(ctx, merchantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, storeError("failed to load profile", err)
		}

		return &GetProfileOutput{Body: merchant}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/user/profile",
		Summary:     "Update the caller's profile",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if input.Body.BusinessName != nil && *input.Body.BusinessName == "" {
			return nil, huma.Error400BadRequest("business name cannot be empty")
		}

		patch := domain.ProfilePatch{
			BusinessName: input.Body.BusinessName,
			Phone:        input.Body.Phone,
			ThemeColor:   input.Body.ThemeColor,
			LogoURL:      input.Body.LogoURL,
		}

		merchant, err := store.Merchants().UpdateProfile(ctx, merchantID, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, storeError("failed to update profile", err)
		}

		auditor.Record(ctx, merchantID, actionProfileUpdate,
			"updated profile settings", middleware.ClientIPFromContext(ctx))

		return &UpdateProfileOutput{Body: merchant}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-banner",
		Method:      http.MethodPatch,
		Path:        "/user/banner",
		Summary:     "Set or clear the caller's menu banner",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *UpdateBannerInput) (*UpdateBannerOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		merchant, err := store.Merchants().UpdateBanner(ctx, merchantID, input.Body.BannerURL)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, storeError("failed to update banner", err)
		}

		auditor.Record(ctx, merchantID, actionBannerUpdate,
			"updated menu banner", middleware.ClientIPFromContext(ctx))

		return &UpdateBannerOutput{Body: merchant}, nil
	})
}
