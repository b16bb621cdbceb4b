package catalog

import "errors"

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCacheMiss          = errors.New("catalog cache miss")
	ErrInvalidCatalog     = errors.New("invalid catalog file")
	ErrReservedSlug       = errors.New("category slug 'sale' is reserved")
)
