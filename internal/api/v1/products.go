package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

// Audit action tags for catalog writes.
const (
	actionProductCreate = "product.create"
	actionProductUpdate = "product.update"
	actionProductDelete = "product.delete"
)

type CreateProductInput struct {
	Body struct {
		Name        string   `json:"name" minLength:"1" maxLength:"255" doc:"Product name"`
		Price       string   `json:"price" minLength:"1" doc:"Non-negative decimal price, e.g. \"12.50\""`
		CategoryID  int64    `json:"category_id" minimum:"1" doc:"Category reference"`
		ImageURL    string   `json:"image_url,omitempty" doc:"Product image"`
		Description string   `json:"description,omitempty" maxLength:"2000" doc:"Free-text description"`
		Tags        []string `json:"tags,omitempty" doc:"Suggestion tags"`
	}
}

type CreateProductOutput struct {
	Body *domain.Product
}

type ListProductsInput struct{}

type ListProductsOutput struct {
	Body []*domain.Product
}

type UpdateProductInput struct {
	ID   int64 `path:"id" doc:"Product ID"`
	Body struct {
		Name        *string  `json:"name,omitempty" maxLength:"255" doc:"Product name"`
		Price       *string  `json:"price,omitempty" doc:"Non-negative decimal price"`
		CategoryID  *int64   `json:"category_id,omitempty" doc:"Category reference"`
		ImageURL    *string  `json:"image_url,omitempty" doc:"Product image"`
		Description *string  `json:"description,omitempty" maxLength:"2000" doc:"Free-text description"`
		Tags        []string `json:"tags,omitempty" doc:"Suggestion tags"`
	}
}

type UpdateProductOutput struct {
	Body *domain.Product
}

type DeleteProductInput struct {
	ID int64 `path:"id" doc:"Product ID"`
}

func RegisterProductRoutes(api huma.API, store DataStore, auditor Auditor) {
	huma.Register(api, huma.Operation{
		OperationID: "create-product",
		Method:      http.MethodPost,
		Path:        "/products",
		Summary:     "Create a product in the caller's catalog",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *CreateProductInput) (*CreateProductOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		ok, err := store.Categories().Exists(ctx, input.Body.CategoryID)
		if err != nil {
			return nil, storeError("failed to check category", err)
		}
		if !ok {
			return nil, huma.Error400BadRequest("unknown category")
		}

		p, err := domain.NewProduct(merchantID, input.Body.CategoryID, input.Body.Name,
			input.Body.Price, input.Body.ImageURL, input.Body.Description, input.Body.Tags)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		if createErr := store.Products().Create(ctx, p); createErr != nil {
			return nil, storeError("failed to create product", createErr)
		}

		auditor.Record(ctx, merchantID, actionProductCreate,
			fmt.Sprintf("created product %q (id %d)", p.Name, p.ID),
			middleware.ClientIPFromContext(ctx))

		return &CreateProductOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/products",
		Summary:     "List the caller's own products",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, _ *ListProductsInput) (*ListProductsOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// The query is implicitly scoped to the principal; another
		// tenant's catalog is unreachable from here.
		products, err := store.Products().ListByMerchant(ctx, merchantID)
		if err != nil {
			return nil, storeError("failed to list products", err)
		}

		return &ListProductsOutput{Body: products}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPatch,
		Path:        "/products/{id}",
		Summary:     "Update a product owned by the caller",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *UpdateProductInput) (*UpdateProductOutput, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if input.Body.Price != nil {
			if err := domain.ValidatePrice(*input.Body.Price); err != nil {
				return nil, huma.Error400BadRequest(err.Error())
			}
		}
		if err := domain.ValidateTags(input.Body.Tags); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		if input.Body.CategoryID != nil {
			exists, err := store.Categories().Exists(ctx, *input.Body.CategoryID)
			if err != nil {
				return nil, storeError("failed to check category", err)
			}
			if !exists {
				return nil, huma.Error400BadRequest("unknown category")
			}
		}

		patch := domain.ProductPatch{
			Name:        input.Body.Name,
			Price:       input.Body.Price,
			ImageURL:    input.Body.ImageURL,
			CategoryID:  input.Body.CategoryID,
			Description: input.Body.Description,
			Tags:        input.Body.Tags,
		}

		p, err := store.Products().Update(ctx, input.ID, merchantID, patch)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("product belongs to another merchant")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, storeError("failed to update product", err)
		}

		auditor.Record(ctx, merchantID, actionProductUpdate,
			fmt.Sprintf("updated product %q (id %d)", p.Name, p.ID),
			middleware.ClientIPFromContext(ctx))

		return &UpdateProductOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Method:      http.MethodDelete,
		Path:        "/products/{id}",
		Summary:     "Delete a product owned by the caller",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *DeleteProductInput) (*struct{}, error) {
		merchantID, ok := middleware.MerchantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		err := store.Products().Delete(ctx, input.ID, merchantID)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("product belongs to another merchant")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, storeError("failed to delete product", err)
		}

		auditor.Record(ctx, merchantID, actionProductDelete,
			fmt.Sprintf("deleted product id %d", input.ID),
			middleware.ClientIPFromContext(ctx))

		return nil, nil
	})
}

// storeError maps transient store failures to a server error with a
// distinct detail so clients can tell them from application errors.
func storeError(msg string, err error) error {
	if errors.Is(err, domain.ErrUnavailable) {
		return huma.Error500InternalServerError("store temporarily unavailable", err)
	}
	return huma.Error500InternalServerError(msg, err)
}
