package domain

import (
	"context"
	"time"
)

// Favorite links a merchant acting as a viewer to a product on someone
// else's menu. Unique per (merchant, product) pair.
type Favorite struct {
	ID         int64     `json:"id"`
	MerchantID int64     `json:"merchant_id"`
	ProductID  int64     `json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *Favorite) error
	ListByMerchant(ctx context.Context, merchantID int64) ([]*Favorite, error)
	// ListProductIDs returns the set of product ids the merchant favorited.
	ListProductIDs(ctx context.Context, merchantID int64) ([]int64, error)
	Delete(ctx context.Context, merchantID, productID int64) error
}
