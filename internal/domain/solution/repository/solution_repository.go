package repository

import (
	"time"

	"studyshare/internal/domain/solution/model"
	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	"studyshare/pkg/errs"

	"gorm.io/gorm"
)

// SolutionFilter 题解列表过滤条件
type SolutionFilter struct {
	CategoryID string
	Difficulty string
	SortBy     string
	Limit      int
}

// SolutionRepository 题解存储层
type SolutionRepository interface {
	List(filter SolutionFilter) ([]model.Solution, error)
	ListFeatured(limit int) ([]model.Solution, error)
	GetByID(id string) (*model.Solution, error)
	Create(solution *model.Solution) error
	UpdateFields(id string, updates map[string]interface{}) error
	Approve(id, approverID string) error
	IncrementViewCount(id string) error

	FindAuthor(id string) (*userModel.User, error)
	FindCategory(id string) (*taxonomyModel.Category, error)
	FindTags(ids []string) ([]taxonomyModel.Tag, error)
}

type solutionRepository struct {
	db *gorm.DB
}

func NewSolutionRepository(db *gorm.DB) SolutionRepository {
	return &solutionRepository{db: db}
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

// List 公开题解列表
func (r *solutionRepository) List(filter SolutionFilter) ([]model.Solution, error) {
	if filter.Limit == 0 {
		return []model.Solution{}, nil
	}

	query := r.db.Model(&model.Solution{}).Where("is_public = ?", true)
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var solutions []model.Solution
	err := applySort(query, filter.SortBy).Limit(filter.Limit).Find(&solutions).Error
	return solutions, err
}

// ListFeatured 精选题解：公开且已审核
func (r *solutionRepository) ListFeatured(limit int) ([]model.Solution, error) {
	if limit == 0 {
		return []model.Solution{}, nil
	}

	var solutions []model.Solution
	err := r.db.Where("is_public = ? AND is_approved = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&solutions).Error
	return solutions, err
}

// GetByID 根据ID获取题解
func (r *solutionRepository) GetByID(id string) (*model.Solution, error) {
	var solution model.Solution
	if err := r.db.Where("id = ?", id).First(&solution).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

// Create 创建题解
func (r *solutionRepository) Create(solution *model.Solution) error {
	return r.db.Create(solution).Error
}

// UpdateFields 局部更新
func (r *solutionRepository) UpdateFields(id string, updates map[string]interface{}) error {
	result := r.db.Model(&model.Solution{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Approve 审核通过，重复审核幂等（时间戳覆盖）
func (r *solutionRepository) Approve(id, approverID string) error {
	now := time.Now()
	result := r.db.Model(&model.Solution{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
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
func (r *solutionRepository) IncrementViewCount(id string) error {
	result := r.db.Model(&model.Solution{}).Where("id = ?", id).
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
func (r *solutionRepository) FindAuthor(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindCategory 详情展示用的分类信息
func (r *solutionRepository) FindCategory(id string) (*taxonomyModel.Category, error) {
	var category taxonomyModel.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindTags 按ID集合取标签，丢失的ID直接跳过
func (r *solutionRepository) FindTags(ids []string) ([]taxonomyModel.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []taxonomyModel.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
