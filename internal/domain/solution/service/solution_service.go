package service

import (
	"errors"

	interactionModel "studyshare/internal/domain/interaction/model"
	interactionRepo "studyshare/internal/domain/interaction/repository"
	"studyshare/internal/domain/solution/model"
	"studyshare/internal/domain/solution/repository"
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
	defaultSolutionLimit = 20
	featuredLimit        = 6
)

// CreateSolutionInput 创建题解输入，作者取自登录身份
type CreateSolutionInput struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Content      string   `json:"content" binding:"required"`
	Code         string   `json:"code"`
	Language     string   `json:"language"`
	AssignmentID string   `json:"assignmentId"`
	CategoryID   string   `json:"categoryId"`
	TagIDs       []string `json:"tagIds"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Attachments  []string `json:"attachments"`
	GithubRepo   string   `json:"githubRepo"`
	LiveDemo     string   `json:"liveDemo"`
	IsPublic     bool     `json:"isPublic"`
}

// UpdateSolutionInput 更新题解输入，nil 字段不修改
type UpdateSolutionInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Code        *string   `json:"code"`
	Language    *string   `json:"language"`
	CategoryID  *string   `json:"categoryId"`
	TagIDs      *[]string `json:"tagIds"`
	Difficulty  *string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Attachments *[]string `json:"attachments"`
	GithubRepo  *string   `json:"githubRepo"`
	LiveDemo    *string   `json:"liveDemo"`
	IsPublic    *bool     `json:"isPublic"`
}

// SolutionService 题解
type SolutionService interface {
	List(filter repository.SolutionFilter) ([]model.SolutionWithDetails, error)
	ListFeatured() ([]model.SolutionWithDetails, error)
	Get(id string) (*model.SolutionWithDetails, error)
	Create(subject string, input CreateSolutionInput) (*model.Solution, error)
	Update(subject, id string, input UpdateSolutionInput) (*model.Solution, error)
	Approve(subject, id string) error
	IncrementView(subject, id string) error
}

type solutionService struct {
	repo         repository.SolutionRepository
	taxonomy     taxonomyService.TaxonomyService
	interactions interactionRepo.InteractionRepository
	identity     identity.Resolver
	events       *worker.EventPool
}

func NewSolutionService(repo repository.SolutionRepository, taxonomy taxonomyService.TaxonomyService,
	interactions interactionRepo.InteractionRepository, resolver identity.Resolver, events *worker.EventPool) SolutionService {
	return &solutionService{
		repo:         repo,
		taxonomy:     taxonomy,
		interactions: interactions,
		identity:     resolver,
		events:       events,
	}
}

// enrich 补齐作者与分类
func (s *solutionService) enrich(solution model.Solution) model.SolutionWithDetails {
	details := model.SolutionWithDetails{Solution: solution}
	if author, err := s.repo.FindAuthor(solution.AuthorID); err == nil {
		details.Author = author
	}
	if solution.CategoryID != "" {
		if category, err := s.repo.FindCategory(solution.CategoryID); err == nil {
			details.Category = category
		}
	}
	return details
}

// List 公开题解列表（带作者与分类），limit 缺省 20，显式 0 返回空
func (s *solutionService) List(filter repository.SolutionFilter) ([]model.SolutionWithDetails, error) {
	filter.Limit = utils.ResolveLimit(filter.Limit, defaultSolutionLimit)
	solutions, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	result := make([]model.SolutionWithDetails, 0, len(solutions))
	for _, solution := range solutions {
		result = append(result, s.enrich(solution))
	}
	return result, nil
}

// ListFeatured 精选题解（公开且已审核，带作者与分类），固定 6 条
func (s *solutionService) ListFeatured() ([]model.SolutionWithDetails, error) {
	solutions, err := s.repo.ListFeatured(featuredLimit)
	if err != nil {
		return nil, err
	}

	result := make([]model.SolutionWithDetails, 0, len(solutions))
	for _, solution := range solutions {
		result = append(result, s.enrich(solution))
	}
	return result, nil
}

// Get 题解详情（作者/分类/标签），不存在返回 nil
func (s *solutionService) Get(id string) (*model.SolutionWithDetails, error) {
	solution, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	details := s.enrich(*solution)
	if tags, err := s.repo.FindTags(solution.TagIDs); err == nil {
		details.Tags = tags
	}
	return &details, nil
}

// Create 创建题解，新题解待审核
func (s *solutionService) Create(subject string, input CreateSolutionInput) (*model.Solution, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}

	solution := &model.Solution{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Code:         input.Code,
		Language:     input.Language,
		AuthorID:     user.UserID,
		AssignmentID: input.AssignmentID,
		CategoryID:   input.CategoryID,
		TagIDs:       input.TagIDs,
		Difficulty:   input.Difficulty,
		Attachments:  input.Attachments,
		GithubRepo:   input.GithubRepo,
		LiveDemo:     input.LiveDemo,
		IsPublic:     input.IsPublic,
	}
	if err := s.repo.Create(solution); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.taxonomy.RecordTagUsage(input.TagIDs); err != nil {
			logger.Log.Warn("Failed to record tag usage", zap.Error(err))
		}
	}

	metrics.GetGlobalCollector().RecordContentCreated("solution")
	return solution, nil
}

// Update 更新题解，只有作者本人或审核角色可以修改
func (s *solutionService) Update(subject, id string, input UpdateSolutionInput) (*model.Solution, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}

	solution, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if solution.AuthorID != user.UserID && !user.CanModerate() {
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
	if input.Code != nil {
		updates["code"] = *input.Code
	}
	if input.Language != nil {
		updates["language"] = *input.Language
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
	if input.Attachments != nil {
		updates["attachments"] = *input.Attachments
	}
	if input.GithubRepo != nil {
		updates["github_repo"] = *input.GithubRepo
	}
	if input.LiveDemo != nil {
		updates["live_demo"] = *input.LiveDemo
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateFields(id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(id)
}

// Approve 审核通过，仅管理员/讲师；通过后给作者发通知
func (s *solutionService) Approve(subject, id string) error {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return err
	}
	if !user.CanModerate() {
		return errs.ErrPermissionDenied
	}

	solution, err := s.repo.GetByID(id)
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
		UserID:    solution.AuthorID,
		Type:      interactionModel.NotificationTypeApproval,
		Title:     "Your solution was approved",
		Message:   solution.Title,
		RelatedID: solution.ID,
	})
	return nil
}

// IncrementView 浏览：计数同步自增，事件日志异步追加（仅登录用户）
func (s *solutionService) IncrementView(subject, id string) error {
	if err := s.repo.IncrementViewCount(id); err != nil {
		return err
	}

	if subject != "" && s.events != nil {
		if user, err := s.identity.Resolve(subject); err == nil {
			s.events.Record(worker.EventTask{
				UserID:          user.UserID,
				ContentType:     interactionModel.ContentTypeSolution,
				ContentID:       id,
				InteractionType: interactionModel.InteractionView,
			})
		}
	}
	return nil
}
