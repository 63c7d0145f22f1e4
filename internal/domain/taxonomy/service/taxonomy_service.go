package service

import (
	"strings"
	"unicode"

	"studyshare/internal/domain/taxonomy/model"
	"studyshare/internal/domain/taxonomy/repository"
	"studyshare/pkg/errs"
	"studyshare/pkg/utils"
)

// 列表默认条数
const defaultPopularTagLimit = 20

// TaxonomyService 分类与标签
type TaxonomyService interface {
	ListActiveCategories() ([]model.Category, error)
	CreateCategory(name, slug, description, color, icon string) (*model.Category, error)

	ListTags() ([]model.Tag, error)
	ListPopularTags(limit int) ([]model.Tag, error)
	CreateTag(name, slug, description, color string) (*model.Tag, error)
	RecordTagUsage(tagIDs []string) error
}

type taxonomyService struct {
	repo repository.TaxonomyRepository
}

func NewTaxonomyService(repo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{repo: repo}
}

// slugify 由名称生成 slug：小写，非字母数字折叠为连字符
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// ListActiveCategories 启用中的分类
func (s *taxonomyService) ListActiveCategories() ([]model.Category, error) {
	return s.repo.ListActiveCategories()
}

// CreateCategory 创建分类，新分类默认启用；slug 缺省时由名称生成
func (s *taxonomyService) CreateCategory(name, slug, description, color, icon string) (*model.Category, error) {
	if slug == "" {
		slug = slugify(name)
	}
	if slug == "" {
		return nil, errs.ErrInvalidArgument
	}

	category := &model.Category{
		Name:        name,
		Description: description,
		Slug:        slug,
		Color:       color,
		Icon:        icon,
		IsActive:    true,
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListTags 全部标签
func (s *taxonomyService) ListTags() ([]model.Tag, error) {
	return s.repo.ListTags()
}

// ListPopularTags 热门标签，limit 缺省 20，显式 0 返回空
func (s *taxonomyService) ListPopularTags(limit int) ([]model.Tag, error) {
	return s.repo.ListPopularTags(utils.ResolveLimit(limit, defaultPopularTagLimit))
}

// CreateTag 创建标签，slug 缺省时由名称生成
func (s *taxonomyService) CreateTag(name, slug, description, color string) (*model.Tag, error) {
	if slug == "" {
		slug = slugify(name)
	}
	if slug == "" {
		return nil, errs.ErrInvalidArgument
	}

	tag := &model.Tag{
		Name:        name,
		Slug:        slug,
		Description: description,
		Color:       color,
	}
	if err := s.repo.CreateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// RecordTagUsage 内容创建时累加被引用标签的使用量
func (s *taxonomyService) RecordTagUsage(tagIDs []string) error {
	return s.repo.IncrementTagUsage(tagIDs)
}
