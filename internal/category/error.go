package category

import "errors"

var (
	ErrFailedGetCategories    = errors.New("failed to get categories")
	ErrFailedGetSubcategories = errors.New("failed to get subcategories")
)
