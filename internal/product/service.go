package product

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)
	log.Info("ListProducts started")

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	log.Info("ListProducts success", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductIDRequired
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductByID"),
		zap.String("product_id", id),
	)

	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		log.Warn("failed to get product", zap.Error(err))
		return nil, err
	}
	return p, nil
}
