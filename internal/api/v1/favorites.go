package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

const (
	actionFavoriteAdd    = "favorite.add"
	actionFavoriteRemove = "favorite.remove"
)

type AddFavoriteInput struct {
	Body struct {
		ProductID int64 `json:"product_id" minimum:"1" doc:"Product to favorite"`
	}
}

type AddFavoriteOutput struct {
	Body *domain.Favorite
}

type ListFavoritesInput struct{}

type ListFavoritesOutput struct {
	Body []*domain.Favorite
}

type RemoveFavoriteInput struct {
	ProductID int64 `path:"productID" doc:"Product to unfavorite"`
}

func RegisterFavoriteRoutes(api huma.API, store DataStore, auditor Auditor) {
	huma.Register(api, huma.Operation{
		OperationID: "add-favorite",
		Method:      http.MethodPost,
		Path:        "/favorites",
		Summary:     "Favorite a product",
		Tags:        []string{"Favorites"},
	}, func(ctx context.Context, input *AddFavoriteInput) (*AddFavoriteOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if _, err := store.Products().GetByID(ctx, input.Body.ProductID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, storeError("failed to check product", err)
		}

		f := &domain.Favorite{
			MerchantID: merchantID,
			ProductID:  input.Body.ProductID,
			CreatedAt:  time.Now(),
		}

		if err := store.Favorites().Create(ctx, f); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("product already favorited")
			}
			return nil, storeError("failed to add favorite", err)
		}

		auditor.Record(ctx, merchantID, actionFavoriteAdd,
			fmt.Sprintf("favorited product id %d", input.Body.ProductID),
			middleware.ClientIPFromContext(ctx))

		return &AddFavoriteOutput{Body: f}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-favorites",
		Method:      http.MethodGet,
		Path:        "/favorites",
		Summary:     "List the caller's favorites",
		Tags:        []string{"Favorites"},
	}, func(ctx context.Context, _ *ListFavoritesInput) (*ListFavoritesOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		favorites, err := store.Favorites().ListByMerchant(ctx, merchantID)
		if err != nil {
			return nil, storeError("failed to list favorites", err)
		}

		return &ListFavoritesOutput{Body: favorites}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-favorite",
		Method:      http.MethodDelete,
		Path:        "/favorites/{productID}",
		Summary:     "Remove a product from the caller's favorites",
		Tags:        []string{"Favorites"},
	}, func(ctx context.Context, input *RemoveFavoriteInput) (*struct{}, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		err := store.Favorites().Delete(ctx, merchantID, input.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("favorite not found")
			}
			return nil, storeError("failed to remove favorite", err)
		}

		auditor.Record(ctx, merchantID, actionFavoriteRemove,
			fmt.Sprintf("unfavorited product id %d", input.ProductID),
			middleware.ClientIPFromContext(ctx))

		return nil, nil
	})
}
