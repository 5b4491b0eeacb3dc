package services

import (
	"context"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

// LimitService reads and replaces the singleton limit configuration.
type LimitService struct {
	storage *storage.Repository
}

func NewLimitService(storage *storage.Repository) *LimitService {
	return &LimitService{storage: storage}
}

func (s *LimitService) Get(ctx context.Context) (core.Limit, error) {
	return s.storage.GetLimit(ctx)
}

func (s *LimitService) Save(ctx context.Context, limit core.Limit) error {
	return s.storage.SaveLimit(ctx, limit)
}
