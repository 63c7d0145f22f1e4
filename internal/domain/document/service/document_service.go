package service

import (
	"errors"

	"studyshare/internal/domain/document/model"
	"studyshare/internal/domain/document/repository"
	interactionModel "studyshare/internal/domain/interaction/model"
	taxonomyService "studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/pkg/identity"
	"studyshare/internal/pkg/worker"
	"studyshare/pkg/errs"
	"studyshare/pkg/logger"
	"studyshare/pkg/metrics"
	"studyshare/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultDocumentLimit = 20
	featuredLimit        = 6
)

// CreateDocumentInput 创建文档输入
type CreateDocumentInput struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	UniversityID string   `json:"universityId"`
	CourseID     string   `json:"courseId"`
	CategoryID   string   `json:"categoryId"`
	TagIDs       []string `json:"tagIds"`
	DocumentType string   `json:"documentType" binding:"required,oneof=assignment exam quiz notes presentation thesis research_paper lab_report essay other"`
	FileURL      string   `json:"fileUrl"`
	FileName     string   `json:"fileName"`
	FileSize     int64    `json:"fileSize"`
	FileType     string   `json:"fileType"`
	PageCount    int      `json:"pageCount"`
	Semester     string   `json:"semester"`
	Year         int      `json:"year"`
	Professor    string   `json:"professor"`
	Grade        string   `json:"grade"`
	Language     string   `json:"language"`
	IsPublic     bool     `json:"isPublic"`
	IsPremium    bool     `json:"isPremium"`
}

// DocumentService 文档
type DocumentService interface {
	List(filter repository.DocumentFilter) ([]model.Document, error)
	ListFeatured() ([]model.Document, error)
	Get(id string) (*model.DocumentWithDetails, error)
	Create(subject string, input CreateDocumentInput) (*model.Document, error)
	Approve(subject, id string) error
	RecordDownload(subject, id string) error
}

type documentService struct {
	repo     repository.DocumentRepository
	taxonomy taxonomyService.TaxonomyService
	identity identity.Resolver
	events   *worker.EventPool
}

func NewDocumentService(repo repository.DocumentRepository, taxonomy taxonomyService.TaxonomyService, resolver identity.Resolver, events *worker.EventPool) DocumentService {
	return &documentService{repo: repo, taxonomy: taxonomy, identity: resolver, events: events}
}

// List 文档列表，limit 缺省 20，显式 0 返回空
func (s *documentService) List(filter repository.DocumentFilter) ([]model.Document, error) {
	filter.Limit = utils.ResolveLimit(filter.Limit, defaultDocumentLimit)
	return s.repo.List(filter)
}

// ListFeatured 首页精选，固定 6 条
func (s *documentService) ListFeatured() ([]model.Document, error) {
	return s.repo.ListFeatured(featuredLimit)
}

// Get 文档详情（带作者与分类），不存在返回 nil
func (s *documentService) Get(id string) (*model.DocumentWithDetails, error) {
	document, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	details := &model.DocumentWithDetails{Document: *document}
	if author, err := s.repo.FindAuthor(document.AuthorID); err == nil {
		details.Author = author
	}
	if document.CategoryID != "" {
		if category, err := s.repo.FindCategory(document.CategoryID); err == nil {
			details.Category = category
		}
	}
	return details, nil
}

// Create 创建文档，作者取自当前登录身份，新文档待审核
func (s *documentService) Create(subject string, input CreateDocumentInput) (*model.Document, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		AuthorID:     user.UserID,
		UniversityID: input.UniversityID,
		CourseID:     input.CourseID,
		CategoryID:   input.CategoryID,
		TagIDs:       input.TagIDs,
		DocumentType: input.DocumentType,
		FileURL:      input.FileURL,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
		FileType:     input.FileType,
		PageCount:    input.PageCount,
		Semester:     input.Semester,
		Year:         input.Year,
		Professor:    input.Professor,
		Grade:        input.Grade,
		Language:     input.Language,
		IsPublic:     input.IsPublic,
		IsPremium:    input.IsPremium,
	}
	if err := s.repo.Create(document); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.taxonomy.RecordTagUsage(input.TagIDs); err != nil {
			logger.Log.Warn("Failed to record tag usage", zap.Error(err))
		}
	}

	metrics.GetGlobalCollector().RecordContentCreated("document")
	return document, nil
}

// Approve 审核通过，仅管理员/讲师
func (s *documentService) Approve(subject, id string) error {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return err
	}
	if !user.CanModerate() {
		return errs.ErrPermissionDenied
	}
	return s.repo.Approve(id, user.UserID)
}

// RecordDownload 下载：计数同步自增，事件日志异步追加（仅登录用户）
func (s *documentService) RecordDownload(subject, id string) error {
	if err := s.repo.IncrementDownloadCount(id); err != nil {
		return err
	}

	if subject != "" && s.events != nil {
		if user, err := s.identity.Resolve(subject); err == nil {
			s.events.Record(worker.EventTask{
				UserID:          user.UserID,
				ContentType:     interactionModel.ContentTypeAssignment,
				ContentID:       id,
				InteractionType: interactionModel.InteractionDownload,
			})
		}
	}
	return nil
}
