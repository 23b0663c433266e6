package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

type GetMenuInput struct {
	MerchantID int64 `path:"merchantID" doc:"Merchant whose public menu to read"`
}

type GetMenuOutput struct {
	Body struct {
		BusinessName string            `json:"business_name"`
		ThemeColor   string            `json:"theme_color"`
		BannerURL    string            `json:"banner_url,omitempty"`
		LogoURL      string            `json:"logo_url,omitempty"`
		Products     []*domain.Product `json:"products"`
		// FavoriteIDs is the authenticated caller's favorite set, not
		// the menu owner's. Empty for anonymous readers.
		FavoriteIDs []int64 `json:"favorite_ids,omitempty"`
	}
}

type ListCategoriesInput struct{}

type ListCategoriesOutput struct {
	Body []*domain.Category
}

// RegisterMenuRoutes wires the public, read-only surface. It is mounted
// without the auth middleware; favorites appear only when the request
// carries a valid token (OptionalAuth).
func RegisterMenuRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-menu",
		Method:      http.MethodGet,
		Path:        "/menu/{merchantID}",
		Summary:     "Read a merchant's public menu",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *GetMenuInput) (*GetMenuOutput, error) {
		merchant, err := store.Merchants().GetByID(ctx, input.MerchantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("menu not found")
			}
			return nil, storeError("failed to load menu", err)
		}

		products, err := store.Products().ListByMerchant(ctx, merchant.ID)
		if err != nil {
			return nil, storeError("failed to load menu products", err)
		}

		out := &GetMenuOutput{}
		out.Body.BusinessName = merchant.BusinessName
		out.Body.ThemeColor = merchant.ThemeColor
		if out.Body.ThemeColor == "" {
			out.Body.ThemeColor = domain.DefaultThemeColor
		}
		out.Body.BannerURL = merchant.BannerURL
		out.Body.LogoURL = merchant.LogoURL
		out.Body.Products = products

		if viewerID, ok := middleware.MerchantIDFromContext(ctx); ok {
			favoriteIDs, favErr := store.Favorites().ListProductIDs(ctx, viewerID)
			if favErr != nil {
				return nil, storeError("failed to load favorites", favErr)
			}
			out.Body.FavoriteIDs = favoriteIDs
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List the fixed category reference set",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, _ *ListCategoriesInput) (*ListCategoriesOutput, error) {
		categories, err := store.Categories().List(ctx)
		if err != nil {
			return nil, storeError("failed to list categories", err)
		}

		return &ListCategoriesOutput{Body: categories}, nil
	})
}
