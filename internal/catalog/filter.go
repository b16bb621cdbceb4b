package catalog

import (
	"strings"

	"storefront-be/internal/category"
	"storefront-be/internal/product"
)

// SaleSlug is the reserved slug that selects discounted products instead of
// a category. No real category may use it.
const SaleSlug = "sale"

// SelectProducts returns the products shown on the listing page for slug.
//
// For SaleSlug it keeps every product with a positive discount. Otherwise it
// finds the first category with that slug and keeps every product whose
// category reference starts with the category id or one of its subcategory
// ids. An unknown slug yields an empty, non-nil slice. Empty category or
// subcategory ids are ignored, so a category with an empty id and no
// subcategories matches nothing, and products without a category reference
// never match.
//
// The result preserves catalog order and shares the product pointers of the
// input; it never mutates either collection.
func SelectProducts(slug string, products []*product.Product, categories []*category.Category) []*product.Product {
	result := make([]*product.Product, 0)

	if slug == SaleSlug {
		for _, p := range products {
			if p != nil && p.OnSale() {
				result = append(result, p)
			}
		}
		return result
	}

	c := FindCategory(slug, categories)
	if c == nil {
		return result
	}

	ids := MatchIDs(c)
	for _, p := range products {
		if p == nil || p.Category == "" {
			continue
		}
		if hasAnyPrefix(p.Category, ids) {
			result = append(result, p)
		}
	}
	return result
}

// FindCategory returns the first category whose slug equals slug, or nil.
func FindCategory(slug string, categories []*category.Category) *category.Category {
	for _, c := range categories {
		if c != nil && c.Slug == slug {
			return c
		}
	}
	return nil
}

// MatchIDs returns the category id followed by its subcategory ids.
// Empty ids are dropped: an empty prefix would match every product.
func MatchIDs(c *category.Category) []string {
	ids := make([]string, 0, 1+len(c.Subcategories))
	if c.ID != "" {
		ids = append(ids, c.ID)
	}
	for _, sub := range c.Subcategories {
		if sub != nil && sub.ID != "" {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}

// FindProduct returns the product with the given id, or nil.
func FindProduct(id string, products []*product.Product) *product.Product {
	for _, p := range products {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
