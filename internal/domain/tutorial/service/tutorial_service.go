package service

import (
	"errors"

	interactionModel "studyshare/internal/domain/interaction/model"
	interactionRepo "studyshare/internal/domain/interaction/repository"
	taxonomyService "studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/domain/tutorial/model"
	"studyshare/internal/domain/tutorial/repository"
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
	defaultTutorialLimit = 20
	featuredLimit        = 6
)

// CreateTutorialInput 创建教程输入，作者取自登录身份
type CreateTutorialInput struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	Content            string   `json:"content" binding:"required"`
	CategoryID         string   `json:"categoryId"`
	TagIDs             []string `json:"tagIds"`
	Difficulty         string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime      int      `json:"estimatedTime"`
	Prerequisites      []string `json:"prerequisites"`
	LearningObjectives []string `json:"learningObjectives"`
	Attachments        []string `json:"attachments"`
	GithubRepo         string   `json:"githubRepo"`
	VideoURL           string   `json:"videoUrl"`
	IsPublic           bool     `json:"isPublic"`
}

// UpdateTutorialInput 更新教程输入，nil 字段不修改
type UpdateTutorialInput struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Content            *string   `json:"content"`
	CategoryID         *string   `json:"categoryId"`
	TagIDs             *[]string `json:"tagIds"`
	Difficulty         *string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime      *int      `json:"estimatedTime"`
	Prerequisites      *[]string `json:"prerequisites"`
	LearningObjectives *[]string `json:"learningObjectives"`
	Attachments        *[]string `json:"attachments"`
	GithubRepo         *string   `json:"githubRepo"`
	VideoURL           *string   `json:"videoUrl"`
	IsPublic           *bool     `json:"isPublic"`
	IsFeatured         *bool     `json:"isFeatured"`
}

// TutorialService 教程
type TutorialService interface {
	List(filter repository.TutorialFilter) ([]model.TutorialWithDetails, error)
	ListFeatured() ([]model.TutorialWithDetails, error)
	Get(id string) (*model.TutorialWithDetails, error)
	Create(subject string, input CreateTutorialInput) (*model.Tutorial, error)
	Update(subject, id string, input UpdateTutorialInput) (*model.Tutorial, error)
	Approve(subject, id string) error
	IncrementView(subject, id string) error
}

type tutorialService struct {
	repo         repository.TutorialRepository
	taxonomy     taxonomyService.TaxonomyService
	interactions interactionRepo.InteractionRepository
	identity     identity.Resolver
	events       *worker.EventPool
}

func NewTutorialService(repo repository.TutorialRepository, taxonomy taxonomyService.TaxonomyService,
	interactions interactionRepo.InteractionRepository, resolver identity.Resolver, events *worker.EventPool) TutorialService {
	return &tutorialService{
		repo:         repo,
		taxonomy:     taxonomy,
		interactions: interactions,
		identity:     resolver,
		events:       events,
	}
}

// enrich 补齐作者与分类
func (s *tutorialService) enrich(tutorial model.Tutorial) model.TutorialWithDetails {
	details := model.TutorialWithDetails{Tutorial: tutorial}
	if author, err := s.repo.FindAuthor(tutorial.AuthorID); err == nil {
		details.Author = author
	}
	if tutorial.CategoryID != "" {
		if category, err := s.repo.FindCategory(tutorial.CategoryID); err == nil {
			details.Category = category
		}
	}
	return details
}

// List 公开教程列表（带作者与分类），limit 缺省 20，显式 0 返回空
func (s *tutorialService) List(filter repository.TutorialFilter) ([]model.TutorialWithDetails, error) {
	filter.Limit = utils.ResolveLimit(filter.Limit, defaultTutorialLimit)
	tutorials, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	result := make([]model.TutorialWithDetails, 0, len(tutorials))
	for _, tutorial := range tutorials {
		result = append(result, s.enrich(tutorial))
	}
	return result, nil
}

// ListFeatured 精选教程（公开且被标记精选，带作者与分类），固定 6 条
func (s *tutorialService) ListFeatured() ([]model.TutorialWithDetails, error) {
	tutorials, err := s.repo.ListFeatured(featuredLimit)
	if err != nil {
		return nil, err
	}

	result := make([]model.TutorialWithDetails, 0, len(tutorials))
	for _, tutorial := range tutorials {
		result = append(result, s.enrich(tutorial))
	}
	return result, nil
}

// Get 教程详情（作者/分类/标签），不存在返回 nil
func (s *tutorialService) Get(id string) (*model.TutorialWithDetails, error) {
	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	details := s.enrich(*tutorial)
	if tags, err := s.repo.FindTags(tutorial.TagIDs); err == nil {
		details.Tags = tags
	}
	return &details, nil
}

// Create 创建教程，新教程待审核且不带精选标记
func (s *tutorialService) Create(subject string, input CreateTutorialInput) (*model.Tutorial, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}

	tutorial := &model.Tutorial{
		Title:              input.Title,
		Description:        input.Description,
		Content:            input.Content,
		AuthorID:           user.UserID,
		CategoryID:         input.CategoryID,
		TagIDs:             input.TagIDs,
		Difficulty:         input.Difficulty,
		EstimatedTime:      input.EstimatedTime,
		Prerequisites:      input.Prerequisites,
		LearningObjectives: input.LearningObjectives,
		Attachments:        input.Attachments,
		GithubRepo:         input.GithubRepo,
		VideoURL:           input.VideoURL,
		IsPublic:           input.IsPublic,
	}
	if err := s.repo.Create(tutorial); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.taxonomy.RecordTagUsage(input.TagIDs); err != nil {
			logger.Log.Warn("Failed to record tag usage", zap.Error(err))
		}
	}

	metrics.GetGlobalCollector().RecordContentCreated("tutorial")
	return tutorial, nil
}

// Update 更新教程，只有作者本人或审核角色可以修改；精选标记仅审核角色可改
func (s *tutorialService) Update(subject, id string, input UpdateTutorialInput) (*model.Tutorial, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}

	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if tutorial.AuthorID != user.UserID && !user.CanModerate() {
		return nil, errs.ErrPermissionDenied
	}
	// 精选标记是运营位，作者自己不能打
	if input.IsFeatured != nil && !user.CanModerate() {
		return nil, errs.ErrPermissionDenied
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.TagIDs != nil {
		updates["tag_ids"] = *input.TagIDs
	}
	if input.Difficulty != nil {
		updates["difficulty"] = *input.Difficulty
	}
	if input.EstimatedTime != nil {
		updates["estimated_time"] = *input.EstimatedTime
	}
	if input.Prerequisites != nil {
		updates["prerequisites"] = *input.Prerequisites
	}
	if input.LearningObjectives != nil {
		updates["learning_objectives"] = *input.LearningObjectives
	}
	if input.Attachments != nil {
		updates["attachments"] = *input.Attachments
	}
	if input.GithubRepo != nil {
		updates["github_repo"] = *input.GithubRepo
	}
	if input.VideoURL != nil {
		updates["video_url"] = *input.VideoURL
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateFields(id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(id)
}

// Approve 审核通过，仅管理员/讲师；通过后给作者发通知
func (s *tutorialService) Approve(subject, id string) error {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return err
	}
	if !user.CanModerate() {
		return errs.ErrPermissionDenied
	}

	tutorial, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return err
	}

	if err := s.repo.Approve(id, user.UserID); err != nil {
		return err
	}

	_ = s.interactions.CreateNotification(&interactionModel.Notification{
		UserID:    tutorial.AuthorID,
		Type:      interactionModel.NotificationTypeApproval,
		Title:     "Your tutorial was approved",
		Message:   tutorial.Title,
		RelatedID: tutorial.ID,
	})
	return nil
}

// IncrementView 浏览：计数同步自增，事件日志异步追加（仅登录用户）
func (s *tutorialService) IncrementView(subject, id string) error {
	if err := s.repo.IncrementViewCount(id); err != nil {
		return err
	}

	if subject != "" && s.events != nil {
		if user, err := s.identity.Resolve(subject); err == nil {
			s.events.Record(worker.EventTask{
				UserID:          user.UserID,
				ContentType:     interactionModel.ContentTypeTutorial,
				ContentID:       id,
				InteractionType: interactionModel.InteractionView,
			})
		}
	}
	return nil
}
