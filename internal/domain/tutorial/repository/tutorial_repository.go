package repository

import (
	"time"

	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	"studyshare/internal/domain/tutorial/model"
	userModel "studyshare/internal/domain/user/model"
	"studyshare/pkg/errs"

	"gorm.io/gorm"
)

// TutorialFilter 教程列表过滤条件
type TutorialFilter struct {
	CategoryID string
	Difficulty string
	Featured   *bool
	SortBy     string
	Limit      int
}

// TutorialRepository 教程存储层
type TutorialRepository interface {
	List(filter TutorialFilter) ([]model.Tutorial, error)
	ListFeatured(limit int) ([]model.Tutorial, error)
	GetByID(id string) (*model.Tutorial, error)
	Create(tutorial *model.Tutorial) error
	UpdateFields(id string, updates map[string]interface{}) error
	Approve(id, approverID string) error
	IncrementViewCount(id string) error

	FindAuthor(id string) (*userModel.User, error)
	FindCategory(id string) (*taxonomyModel.Category, error)
	FindTags(ids []string) ([]taxonomyModel.Tag, error)
}

type tutorialRepository struct {
	db *gorm.DB
}

func NewTutorialRepository(db *gorm.DB) TutorialRepository {
	return &tutorialRepository{db: db}
}

func applySort(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case "rating":
		return query.Order("rating DESC")
	case "views":
		return query.Order("view_count DESC")
	default:
		return query.Order("created_at DESC")
	}
}

// List 公开教程列表
func (r *tutorialRepository) List(filter TutorialFilter) ([]model.Tutorial, error) {
	if filter.Limit == 0 {
		return []model.Tutorial{}, nil
	}

	query := r.db.Model(&model.Tutorial{}).Where("is_public = ?", true)
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var tutorials []model.Tutorial
	err := applySort(query, filter.SortBy).Limit(filter.Limit).Find(&tutorials).Error
	return tutorials, err
}

// ListFeatured 精选教程：公开且被标记精选
func (r *tutorialRepository) ListFeatured(limit int) ([]model.Tutorial, error) {
	if limit == 0 {
		return []model.Tutorial{}, nil
	}

	var tutorials []model.Tutorial
	err := r.db.Where("is_public = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&tutorials).Error
	return tutorials, err
}

// GetByID 根据ID获取教程
func (r *tutorialRepository) GetByID(id string) (*model.Tutorial, error) {
	var tutorial model.Tutorial
	if err := r.db.Where("id = ?", id).First(&tutorial).Error; err != nil {
		return nil, err
	}
	return &tutorial, nil
}

// Create 创建教程
func (r *tutorialRepository) Create(tutorial *model.Tutorial) error {
	return r.db.Create(tutorial).Error
}

// UpdateFields 局部更新
func (r *tutorialRepository) UpdateFields(id string, updates map[string]interface{}) error {
	result := r.db.Model(&model.Tutorial{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Approve 审核通过，重复审核幂等（时间戳覆盖）
func (r *tutorialRepository) Approve(id, approverID string) error {
	now := time.Now()
	result := r.db.Model(&model.Tutorial{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"is_approved": true,
		"approved_by": approverID,
		"approved_at": now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// IncrementViewCount 浏览计数原子自增
func (r *tutorialRepository) IncrementViewCount(id string) error {
	result := r.db.Model(&model.Tutorial{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindAuthor 详情展示用的作者信息
func (r *tutorialRepository) FindAuthor(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindCategory 详情展示用的分类信息
func (r *tutorialRepository) FindCategory(id string) (*taxonomyModel.Category, error) {
	var category taxonomyModel.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindTags 按ID集合取标签，丢失的ID直接跳过
func (r *tutorialRepository) FindTags(ids []string) ([]taxonomyModel.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []taxonomyModel.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
