package repository

import (
	"studyshare/internal/domain/university/model"

	"gorm.io/gorm"
)

// UniversityRepository 学校与课程存储层
type UniversityRepository interface {
	List(country string, limit int) ([]model.University, error)
	GetByID(id string) (*model.University, error)
	Create(university *model.University) error

	ListCourses(universityID string) ([]model.Course, error)
	CreateCourse(course *model.Course) error
}

type universityRepository struct {
	db *gorm.DB
}

func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

// List 按国家筛选并截断，搜索词过滤在 service 层做
func (r *universityRepository) List(country string, limit int) ([]model.University, error) {
	if limit == 0 {
		return []model.University{}, nil
	}

	query := r.db.Model(&model.University{})
	if country != "" {
		query = query.Where("country = ?", country)
	}

	var universities []model.University
	err := query.Order("name ASC").Limit(limit).Find(&universities).Error
	return universities, err
}

// GetByID 根据ID获取学校
func (r *universityRepository) GetByID(id string) (*model.University, error) {
	var university model.University
	if err := r.db.Where("id = ?", id).First(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

// Create 创建学校
func (r *universityRepository) Create(university *model.University) error {
	return r.db.Create(university).Error
}

// ListCourses 学校下的课程
func (r *universityRepository) ListCourses(universityID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("university_id = ?", universityID).Order("code ASC").Find(&courses).Error
	return courses, err
}

// CreateCourse 创建课程
func (r *universityRepository) CreateCourse(course *model.Course) error {
	return r.db.Create(course).Error
}
