package category

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories returns every category with its subcategories attached.
func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)
	log.Info("GetCategories started")

	// 1. Parent categories
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		log.Info("no categories found")
		return []*Category{}, nil
	}

	// 2. All subcategories in one round trip
	categoryIDs := make([]string, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	subcategoriesMap, err := s.repo.GetSubcategoriesByIds(ctx, categoryIDs)
	if err != nil {
		log.Error("failed to get subcategories by ids", zap.Error(err))
		return nil, err
	}

	// 3. Attach
	for _, c := range categories {
		c.Subcategories = subcategoriesMap[c.ID]
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}
