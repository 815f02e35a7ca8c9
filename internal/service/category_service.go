package service

import (
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/pkg/logger"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const categoryCacheKey = "categories:all"

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
	Redis        *redis.Client
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, rdb *redis.Client) *CategoryService {
	return &CategoryService{
		CategoryRepo: categoryRepo,
		Redis:        rdb,
	}
}

// ListCategories serves the public category list through a Redis
// read-through cache. Cache failures fall back to the database.
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, categoryCacheKey).Result()
		if err == nil {
			var cached []model.Category
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("category cache read failed", zap.Error(err))
		}
	}

	categories, err := s.CategoryRepo.ListAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(categories); err == nil {
			if err := s.Redis.Set(ctx, categoryCacheKey, encoded, time.Hour).Err(); err != nil {
				logger.Log.Warn("category cache write failed", zap.Error(err))
			}
		}
	}

	return categories, nil
}
