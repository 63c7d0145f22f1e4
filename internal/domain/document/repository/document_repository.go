package repository

import (
	"time"

	"studyshare/internal/domain/document/model"
	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	"studyshare/pkg/errs"

	"gorm.io/gorm"
)

// DocumentFilter 文档列表过滤条件
type DocumentFilter struct {
	Search       string
	DocumentType string
	UniversityID string
	CourseID     string
	SortBy       string
	Limit        int
}

// DocumentRepository 文档存储层
type DocumentRepository interface {
	List(filter DocumentFilter) ([]model.Document, error)
	ListFeatured(limit int) ([]model.Document, error)
	GetByID(id string) (*model.Document, error)
	Create(document *model.Document) error
	Approve(id, moderatorID string) error
	IncrementDownloadCount(id string) error

	FindAuthor(id string) (*userModel.User, error)
	FindCategory(id string) (*taxonomyModel.Category, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// applySort 列表排序键
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

// List 文档列表
// 注意：这里不过滤 is_public，与对外接口的既有行为一致
func (r *documentRepository) List(filter DocumentFilter) ([]model.Document, error) {
	if filter.Limit == 0 {
		return []model.Document{}, nil
	}

	query := r.db.Model(&model.Document{})
	if filter.DocumentType != "" && filter.DocumentType != "All" {
		query = query.Where("document_type = ?", filter.DocumentType)
	}
	if filter.UniversityID != "" {
		query = query.Where("university_id = ?", filter.UniversityID)
	}
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var documents []model.Document
	err := applySort(query, filter.SortBy).Limit(filter.Limit).Find(&documents).Error
	return documents, err
}

// ListFeatured 精选文档：必须同时已审核且公开
func (r *documentRepository) ListFeatured(limit int) ([]model.Document, error) {
	if limit == 0 {
		return []model.Document{}, nil
	}

	var documents []model.Document
	err := r.db.Where("is_approved = ? AND is_public = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&documents).Error
	return documents, err
}

// GetByID 根据ID获取文档
func (r *documentRepository) GetByID(id string) (*model.Document, error) {
	var document model.Document
	if err := r.db.Where("id = ?", id).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// Create 创建文档
func (r *documentRepository) Create(document *model.Document) error {
	return r.db.Create(document).Error
}

// Approve 审核通过，重复审核幂等（时间戳覆盖）
func (r *documentRepository) Approve(id, moderatorID string) error {
	now := time.Now()
	result := r.db.Model(&model.Document{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"is_approved":  true,
		"moderated_by": moderatorID,
		"moderated_at": now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// IncrementDownloadCount 下载计数原子自增
func (r *documentRepository) IncrementDownloadCount(id string) error {
	result := r.db.Model(&model.Document{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindAuthor 详情展示用的作者信息
func (r *documentRepository) FindAuthor(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindCategory 详情展示用的分类信息
func (r *documentRepository) FindCategory(id string) (*taxonomyModel.Category, error) {
	var category taxonomyModel.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
