package catalog

import (
	"time"

	"storefront-be/internal/category"
	"storefront-be/internal/product"
)

// Snapshot is a fully materialized catalog. It is shared between readers
// and must be treated as read-only once published.
type Snapshot struct {
	Categories []*category.Category `json:"categories" validate:"dive"`
	Products   []*product.Product   `json:"products" validate:"dive"`
	LoadedAt   time.Time            `json:"loadedAt"`
}
