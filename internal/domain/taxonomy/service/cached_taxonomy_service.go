package service

import (
	"context"
	"fmt"
	"time"

	"studyshare/internal/domain/taxonomy/model"
	"studyshare/pkg/cache"
	"studyshare/pkg/logger"
	"studyshare/pkg/metrics"

	"go.uber.org/zap"
)

// CachedTaxonomyService 带缓存的分类/标签服务
// 分类和热门标签是最热的读路径，写入低频，缓存命中率高
type CachedTaxonomyService struct {
	inner TaxonomyService
	cache cache.CacheService
}

func NewCachedTaxonomyService(inner TaxonomyService, cache cache.CacheService) TaxonomyService {
	return &CachedTaxonomyService{inner: inner, cache: cache}
}

const (
	CategoriesCacheKey     = "taxonomy:categories"
	PopularTagsCachePrefix = "taxonomy:popular_tags:"
	TaxonomyCacheTTL       = time.Minute * 15
)

func (s *CachedTaxonomyService) ListActiveCategories() ([]model.Category, error) {
	ctx := context.Background()

	var cached []model.Category
	if err := s.cache.Get(ctx, CategoriesCacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheAccess("taxonomy:categories", true)
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheAccess("taxonomy:categories", false)

	categories, err := s.inner.ListActiveCategories()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, CategoriesCacheKey, categories, TaxonomyCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache categories", zap.Error(err))
	}
	return categories, nil
}

func (s *CachedTaxonomyService) CreateCategory(name, slug, description, color, icon string) (*model.Category, error) {
	category, err := s.inner.CreateCategory(name, slug, description, color, icon)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(context.Background(), CategoriesCacheKey); err != nil {
		logger.Log.Warn("Failed to invalidate categories cache", zap.Error(err))
	}
	return category, nil
}

// ListTags 全量标签列表不缓存，管理端低频使用
func (s *CachedTaxonomyService) ListTags() ([]model.Tag, error) {
	return s.inner.ListTags()
}

func (s *CachedTaxonomyService) ListPopularTags(limit int) ([]model.Tag, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("%s%d", PopularTagsCachePrefix, limit)

	var cached []model.Tag
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheAccess("taxonomy:popular_tags", true)
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheAccess("taxonomy:popular_tags", false)

	tags, err := s.inner.ListPopularTags(limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, tags, TaxonomyCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache popular tags", zap.Error(err))
	}
	return tags, nil
}

func (s *CachedTaxonomyService) CreateTag(name, slug, description, color string) (*model.Tag, error) {
	tag, err := s.inner.CreateTag(name, slug, description, color)
	if err != nil {
		return nil, err
	}
	if err := s.cache.InvalidatePattern(context.Background(), PopularTagsCachePrefix+"*"); err != nil {
		logger.Log.Warn("Failed to invalidate popular tags cache", zap.Error(err))
	}
	return tag, nil
}

// RecordTagUsage 使用量变化不主动失效热门标签缓存，靠 TTL 过期即可
func (s *CachedTaxonomyService) RecordTagUsage(tagIDs []string) error {
	return s.inner.RecordTagUsage(tagIDs)
}
