package service

import (
	"context"
	"fmt"
	"time"

	"studyshare/internal/domain/user/model"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/cache"
	"studyshare/pkg/logger"
	"studyshare/pkg/metrics"

	"go.uber.org/zap"
)

// CachedUserService 带缓存的用户服务
// 只包读路径（主页、身份查找），写路径透传并失效相关缓存
type CachedUserService struct {
	inner UserService
	cache cache.CacheService
}

// NewCachedUserService 创建带缓存的用户服务
func NewCachedUserService(inner UserService, cache cache.CacheService) UserService {
	return &CachedUserService{
		inner: inner,
		cache: cache,
	}
}

// 缓存键常量
const (
	ProfileCacheKeyPrefix = "profile:"
	SubjectCacheKeyPrefix = "subject:"
	ProfileCacheTTL       = time.Minute * 10
	SubjectCacheTTL       = time.Hour
)

func (s *CachedUserService) profileCacheKey(userID string) string {
	return fmt.Sprintf("%s%s", ProfileCacheKeyPrefix, userID)
}

func (s *CachedUserService) subjectCacheKey(subject string) string {
	return fmt.Sprintf("%s%s", SubjectCacheKeyPrefix, subject)
}

// invalidate 清除某个用户的缓存
func (s *CachedUserService) invalidate(ctx context.Context, userID, subject string) {
	if userID != "" {
		if err := s.cache.Delete(ctx, s.profileCacheKey(userID)); err != nil {
			logger.Log.Warn("Failed to invalidate profile cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if subject != "" {
		if err := s.cache.Delete(ctx, s.subjectCacheKey(subject)); err != nil {
			logger.Log.Warn("Failed to invalidate subject cache", zap.Error(err))
		}
	}
}

// Resolve 身份解析不走缓存：权限字段（role）必须实时
func (s *CachedUserService) Resolve(subject string) (*identity.Identity, error) {
	return s.inner.Resolve(subject)
}

// SyncIdentity 身份同步（写路径，失效缓存）
func (s *CachedUserService) SyncIdentity(subject, name, email, avatar string) (*model.User, error) {
	user, err := s.inner.SyncIdentity(subject, name, email, avatar)
	if err != nil {
		return nil, err
	}
	s.invalidate(context.Background(), user.ID, subject)
	return user, nil
}

// GetByAuthSubject 身份查找（带缓存）
func (s *CachedUserService) GetByAuthSubject(subject string) (*model.User, error) {
	if subject == "" {
		return nil, nil
	}

	ctx := context.Background()
	cacheKey := s.subjectCacheKey(subject)

	var cached model.User
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheAccess(SubjectCacheKeyPrefix, true)
		return &cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheAccess(SubjectCacheKeyPrefix, false)

	user, err := s.inner.GetByAuthSubject(subject)
	if err != nil || user == nil {
		return user, err
	}

	if err := s.cache.Set(ctx, cacheKey, user, SubjectCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache user", zap.Error(err))
	}
	return user, nil
}

// GetProfile 用户主页（带缓存）
func (s *CachedUserService) GetProfile(userID string) (*model.Profile, error) {
	ctx := context.Background()
	cacheKey := s.profileCacheKey(userID)

	var cached model.Profile
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheAccess(ProfileCacheKeyPrefix, true)
		return &cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheAccess(ProfileCacheKeyPrefix, false)

	profile, err := s.inner.GetProfile(userID)
	if err != nil || profile == nil {
		return profile, err
	}

	if err := s.cache.Set(ctx, cacheKey, profile, ProfileCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache profile", zap.Error(err))
	}
	return profile, nil
}

// UpdateProfile 更新资料（写路径，失效缓存）
func (s *CachedUserService) UpdateProfile(subject string, update ProfileUpdate) (*model.User, error) {
	user, err := s.inner.UpdateProfile(subject, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(context.Background(), user.ID, subject)
	return user, nil
}
