package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Suggestion tags a merchant may attach to a product.
const (
	TagPopular     = "popular"
	TagHealthy     = "healthy"
	TagSpicy       = "spicy"
	TagVegetarian  = "vegetarian"
	TagChefsChoice = "chefs-choice"
	TagNew         = "new"
	TagPremium     = "premium"
	TagOutOfStock  = "out-of-stock"
)

var validTags = map[string]struct{}{
	TagPopular:     {},
	TagHealthy:     {},
	TagSpicy:       {},
	TagVegetarian:  {},
	TagChefsChoice: {},
	TagNew:         {},
	TagPremium:     {},
	TagOutOfStock:  {},
}

// priceRe accepts a non-negative decimal with at most two fraction digits.
// Prices travel as strings end to end so "12.50" never drifts.
var priceRe = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

// Product is a catalog item. Exactly one merchant owns it and exactly one
// category classifies it.
type Product struct {
	ID          int64     `json:"id"`
	MerchantID  int64     `json:"merchant_id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct creates a Product with validated required fields.
func NewProduct(merchantID, categoryID int64, name, price, imageURL, description string, tags []string) (*Product, error) {
	if merchantID == 0 {
		return nil, errors.New("product: merchant ID is required")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("product: %w: category is required", ErrInvalid)
	}
	if name == "" {
		return nil, fmt.Errorf("product: %w: name is required", ErrInvalid)
	}
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}
	if err := ValidateTags(tags); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Product{
		MerchantID:  merchantID,
		CategoryID:  categoryID,
		Name:        name,
		Price:       price,
		ImageURL:    imageURL,
		Description: description,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidatePrice checks the decimal-string price format. Negative values
// never match; the regexp only admits unsigned decimals.
func ValidatePrice(price string) error {
	if !priceRe.MatchString(price) {
		return fmt.Errorf("product: %w: price must be a non-negative decimal with at most 2 fraction digits", ErrInvalid)
	}
	return nil
}

// ValidateTags checks every tag against the fixed suggestion-tag set.
func ValidateTags(tags []string) error {
	for _, tag := range tags {
		if _, ok := validTags[tag]; !ok {
			return fmt.Errorf("product: %w: unknown tag %q", ErrInvalid, tag)
		}
	}
	return nil
}

// ProductPatch holds the mutable product fields for partial updates.
// Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Price       *string
	ImageURL    *string
	CategoryID  *int64
	Description *string
	Tags        []string
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListByMerchant(ctx context.Context, merchantID int64) ([]*Product, error)
	// Update applies the patch only when the row is owned by merchantID;
	// the ownership predicate runs inside the UPDATE statement.
	Update(ctx context.Context, id, merchantID int64, patch ProductPatch) (*Product, error)
	// Delete removes the row only when owned by merchantID.
	Delete(ctx context.Context, id, merchantID int64) error
	Count(ctx context.Context) (int64, error)
	CountByMerchant(ctx context.Context) ([]MerchantProductCount, error)
}

// MerchantProductCount is one row of the per-tenant product breakdown in
// the admin stats view.
type MerchantProductCount struct {
	MerchantID   int64  `json:"merchant_id"`
	BusinessName string `json:"business_name"`
	Products     int64  `json:"products"`
}
