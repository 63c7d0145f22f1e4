package service

import (
	"errors"
	"strings"

	"studyshare/internal/domain/university/model"
	"studyshare/internal/domain/university/repository"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"
	"studyshare/pkg/utils"

	"gorm.io/gorm"
)

const defaultUniversityLimit = 50

// CreateUniversityInput 创建学校输入
type CreateUniversityInput struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
}

// CreateCourseInput 创建课程输入
type CreateCourseInput struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	UniversityID string `json:"universityId" binding:"required"`
	Description  string `json:"description"`
	Faculty      string `json:"faculty"`
	Level        string `json:"level"`
}

// UniversityService 学校与课程
type UniversityService interface {
	List(search, country string, limit int) ([]model.University, error)
	Get(id string) (*model.University, error)
	Create(subject string, input CreateUniversityInput) (*model.University, error)

	ListCourses(universityID string) ([]model.Course, error)
	CreateCourse(subject string, input CreateCourseInput) (*model.Course, error)
}

type universityService struct {
	repo     repository.UniversityRepository
	identity identity.Resolver
}

func NewUniversityService(repo repository.UniversityRepository, resolver identity.Resolver) UniversityService {
	return &universityService{repo: repo, identity: resolver}
}

// List 学校列表
// 国家过滤和截断在 SQL 里完成，搜索词对已截断的页做子串匹配——
// 搜索结果可能少于命中总数，这是对外接口的既有行为，客户端依赖它
func (s *universityService) List(search, country string, limit int) ([]model.University, error) {
	if country == "All Countries" {
		country = ""
	}

	limit = utils.ResolveLimit(limit, defaultUniversityLimit)
	universities, err := s.repo.List(country, limit)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return universities, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]model.University, 0, len(universities))
	for _, u := range universities {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// Get 学校详情，不存在返回 nil
func (s *universityService) Get(id string) (*model.University, error) {
	university, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return university, nil
}

// Create 创建学校，任何登录用户可提交，默认未认证
func (s *universityService) Create(subject string, input CreateUniversityInput) (*model.University, error) {
	if _, err := s.identity.Resolve(subject); err != nil {
		return nil, err
	}

	university := &model.University{
		Name:    input.Name,
		Country: input.Country,
		Website: input.Website,
		Logo:    input.Logo,
	}
	if err := s.repo.Create(university); err != nil {
		return nil, err
	}
	return university, nil
}

// ListCourses 学校下的课程，学校必须存在
func (s *universityService) ListCourses(universityID string) ([]model.Course, error) {
	if _, err := s.repo.GetByID(universityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListCourses(universityID)
}

// CreateCourse 创建课程
func (s *universityService) CreateCourse(subject string, input CreateCourseInput) (*model.Course, error) {
	if _, err := s.identity.Resolve(subject); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(input.UniversityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	course := &model.Course{
		Name:         input.Name,
		Code:         input.Code,
		UniversityID: input.UniversityID,
		Description:  input.Description,
		Faculty:      input.Faculty,
		Level:        input.Level,
	}
	if err := s.repo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}
