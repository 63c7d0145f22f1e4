package repository

import (
	"studyshare/internal/domain/taxonomy/model"

	"gorm.io/gorm"
)

// TaxonomyRepository 分类与标签存储层
type TaxonomyRepository interface {
	ListActiveCategories() ([]model.Category, error)
	CreateCategory(category *model.Category) error

	ListTags() ([]model.Tag, error)
	ListPopularTags(limit int) ([]model.Tag, error)
	CreateTag(tag *model.Tag) error
	IncrementTagUsage(tagIDs []string) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// ListActiveCategories 启用中的分类
func (r *taxonomyRepository) ListActiveCategories() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

// CreateCategory 创建分类
func (r *taxonomyRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

// ListTags 全部标签，最新在前
func (r *taxonomyRepository) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Order("created_at DESC").Find(&tags).Error
	return tags, err
}

// ListPopularTags 按使用量排序的标签
func (r *taxonomyRepository) ListPopularTags(limit int) ([]model.Tag, error) {
	if limit == 0 {
		return []model.Tag{}, nil
	}
	var tags []model.Tag
	err := r.db.Order("usage_count DESC").Limit(limit).Find(&tags).Error
	return tags, err
}

// CreateTag 创建标签
func (r *taxonomyRepository) CreateTag(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

// IncrementTagUsage 批量原子累加标签使用量
func (r *taxonomyRepository) IncrementTagUsage(tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return r.db.Model(&model.Tag{}).Where("id IN ?", tagIDs).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
