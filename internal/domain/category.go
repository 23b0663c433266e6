package domain

import "context"

// Category is static reference data, not tenant-owned. The fixed set is
// seeded by the store bootstrap.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
