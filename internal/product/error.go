package product

import "errors"

var (
	ErrProductIDRequired = errors.New("product id is required")
	ErrProductNotFound   = errors.New("product not found")

	ErrFailedGetProducts = errors.New("failed to get products")
	ErrFailedGetProduct  = errors.New("failed to get product")
)
