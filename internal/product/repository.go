package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id,
	p.name,
	p.price,
	COALESCE(p.description, ''),
	p.category_ref,
	p.colors,
	p.sizes,
	p.rating,
	p.discount,
	p.is_new
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p        Product
		category sql.NullString
		discount sql.NullFloat64
		colors   pq.StringArray
		sizes    pq.StringArray
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&category,
		&colors,
		&sizes,
		&p.Rating,
		&discount,
		&p.New,
	)
	if err != nil {
		return nil, err
	}

	if category.Valid {
		p.Category = category.String
	}
	if discount.Valid {
		d := discount.Float64
		p.Discount = &d
	}
	p.Colors = []string(colors)
	p.Sizes = []string(sizes)
	return &p, nil
}

// ListProducts returns the whole catalog in catalog order (position, then id).
func (r *repository) ListProducts(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.position ASC, p.id ASC`

	log.Debug("Executing ListProducts query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed ListProducts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProducts, err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProducts, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProducts, err)
	}

	return products, nil
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProductByID"),
		zap.String("product_id", id),
	)

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("product not found")
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("DB query failed GetProductByID", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}

	return p, nil
}
