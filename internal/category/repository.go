package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetSubcategoriesByIds(ctx context.Context, categoryIDs []string) (map[string][]*Subcategory, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetCategories returns every top-level category in catalog order.
// Subcategories are not attached here.
func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
	)

	query := `
		SELECT
			c.id,
			c.slug,
			c.name
		FROM category c
		ORDER BY c.position ASC, c.id ASC
	`

	log.Debug("Executing GetCategories query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCategories, err)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCategories, err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCategories, err)
	}

	return categories, nil
}

// GetSubcategoriesByIds loads the subcategories of all given categories in
// one query, grouped by parent id and kept in declaration order.
func (r *repository) GetSubcategoriesByIds(
	ctx context.Context,
	categoryIDs []string,
) (map[string][]*Subcategory, error) {

	result := make(map[string][]*Subcategory, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(categoryIDs))
	args := make([]interface{}, len(categoryIDs))
	for i, id := range categoryIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, category_id, name FROM subcategories WHERE category_id IN (%s) ORDER BY position ASC, id ASC`,
		strings.Join(placeholders, ","),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetSubcategoriesByIds", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetSubcategories, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetSubcategories, err)
		}
		result[s.CategoryID] = append(result[s.CategoryID], &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetSubcategories, err)
	}

	return result, nil
}
