package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"storefront-be/internal/category"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// Source produces a complete catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// ProductLookup is implemented by sources that can fetch one product
// without loading the whole catalog.
type ProductLookup interface {
	LookupProduct(ctx context.Context, id string) (*product.Product, error)
}

// DBSource loads the catalog from Postgres through the domain services.
type DBSource struct {
	categories category.Service
	products   product.Service
}

func NewDBSource(categories category.Service, products product.Service) *DBSource {
	return &DBSource{categories: categories, products: products}
}

func (s *DBSource) Load(ctx context.Context) (*Snapshot, error) {
	categories, err := s.categories.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	return &Snapshot{
		Categories: categories,
		Products:   products,
		LoadedAt:   time.Now().UTC(),
	}, nil
}

// LookupProduct reads a single product straight from the database.
func (s *DBSource) LookupProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.products.GetProductByID(ctx, id)
}

// FileSource loads the catalog from a JSON fixture:
//
//	{"categories": [...], "products": [...]}
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	snap, err := ParseCatalog(f)
	if err != nil {
		logger.FromCtx(ctx).Error("catalog file rejected",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil, err
	}
	return snap, nil
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if err := validate.Struct(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	for _, c := range snap.Categories {
		if c != nil && c.Slug == SaleSlug {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, ErrReservedSlug)
		}
	}

	if snap.Categories == nil {
		snap.Categories = []*category.Category{}
	}
	if snap.Products == nil {
		snap.Products = []*product.Product{}
	}
	snap.LoadedAt = time.Now().UTC()
	return &snap, nil
}
