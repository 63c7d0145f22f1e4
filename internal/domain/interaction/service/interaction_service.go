package service

import (
	"errors"

	"studyshare/internal/domain/interaction/model"
	"studyshare/internal/domain/interaction/repository"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"
	"studyshare/pkg/metrics"

	"gorm.io/gorm"
)

// InteractionService 点赞/收藏/评论/评分/通知
type InteractionService interface {
	ToggleLike(subject string, contentType model.ContentType, contentID string) (bool, error)
	ToggleBookmark(subject string, contentID string) (bool, error)

	ListComments(contentType model.ContentType, contentID string) ([]model.CommentThread, error)
	CreateComment(subject string, contentType model.ContentType, contentID, content string, parentID *string) (*model.Comment, error)

	RateContent(subject string, contentType model.ContentType, contentID string, stars int, review string) error

	ListNotifications(subject string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error)
	MarkNotificationRead(subject, notificationID string) error
}

type interactionService struct {
	repo     repository.InteractionRepository
	identity identity.Resolver
}

func NewInteractionService(repo repository.InteractionRepository, resolver identity.Resolver) InteractionService {
	return &interactionService{repo: repo, identity: resolver}
}

// ToggleLike 点赞/取消点赞，返回切换后的状态
func (s *interactionService) ToggleLike(subject string, contentType model.ContentType, contentID string) (bool, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return false, err
	}
	if !contentType.Valid() {
		return false, errs.ErrInvalidArgument
	}

	liked, err := s.repo.ToggleInteraction(user.UserID, contentType, contentID, model.InteractionLike)
	if err != nil {
		return false, err
	}
	metrics.GetGlobalCollector().RecordInteraction(string(contentType), string(model.InteractionLike))
	return liked, nil
}

// ToggleBookmark 收藏/取消收藏，目前只有教程支持收藏
func (s *interactionService) ToggleBookmark(subject string, contentID string) (bool, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return false, err
	}

	bookmarked, err := s.repo.ToggleInteraction(user.UserID, model.ContentTypeTutorial, contentID, model.InteractionBookmark)
	if err != nil {
		return false, err
	}
	metrics.GetGlobalCollector().RecordInteraction(string(model.ContentTypeTutorial), string(model.InteractionBookmark))
	return bookmarked, nil
}

// ListComments 顶层评论最新在前，每条带一层直接回复（最早在前），不递归
func (s *interactionService) ListComments(contentType model.ContentType, contentID string) ([]model.CommentThread, error) {
	if !contentType.Valid() {
		return nil, errs.ErrInvalidArgument
	}

	topLevel, err := s.repo.ListTopLevelComments(contentType, contentID)
	if err != nil {
		return nil, err
	}

	threads := make([]model.CommentThread, 0, len(topLevel))
	for _, comment := range topLevel {
		replies, err := s.repo.ListReplies(comment.ID)
		if err != nil {
			return nil, err
		}
		threads = append(threads, model.CommentThread{Comment: comment, Replies: replies})
	}
	return threads, nil
}

// CreateComment 发表评论或回复
// 回复始终挂到顶层评论下（对回复的回复会被提升），保证评论树只有一层
func (s *interactionService) CreateComment(subject string, contentType model.ContentType, contentID, content string, parentID *string) (*model.Comment, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, err
	}
	if !contentType.Valid() {
		return nil, errs.ErrInvalidArgument
	}

	var parent *model.Comment
	if parentID != nil && *parentID != "" {
		parent, err = s.repo.GetCommentByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.ErrNotFound
			}
			return nil, err
		}
		if parent.ContentType != contentType || parent.ContentID != contentID {
			return nil, errs.ErrInvalidArgument
		}
		// 回复的回复提升到顶层评论下
		if parent.ParentID != nil {
			root, err := s.repo.GetCommentByID(*parent.ParentID)
			if err == nil {
				parent = root
			}
		}
	}

	comment := &model.Comment{
		Content:     content,
		AuthorID:    user.UserID,
		ContentType: contentType,
		ContentID:   contentID,
		IsApproved:  true,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}

	// 目标内容上的 comment_count 不在这里维护，展示端直接查询评论表

	if parent != nil && parent.AuthorID != user.UserID {
		_ = s.repo.CreateNotification(&model.Notification{
			UserID:    parent.AuthorID,
			Type:      model.NotificationTypeReply,
			Title:     "New reply to your comment",
			Message:   content,
			RelatedID: comment.ID,
		})
	}

	return comment, nil
}

// RateContent 评分（1-5 星），同一用户重复评分覆盖旧值
func (s *interactionService) RateContent(subject string, contentType model.ContentType, contentID string, stars int, review string) error {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return err
	}
	if contentType != model.ContentTypeSolution && contentType != model.ContentTypeTutorial {
		return errs.ErrInvalidArgument
	}
	if stars < 1 || stars > 5 {
		return errs.ErrInvalidArgument
	}

	return s.repo.UpsertRating(&model.Rating{
		UserID:      user.UserID,
		ContentType: contentType,
		ContentID:   contentID,
		Stars:       stars,
		Review:      review,
	})
}

// ListNotifications 当前用户的通知列表
func (s *interactionService) ListNotifications(subject string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListNotifications(user.UserID, unreadOnly, offset, limit)
}

// MarkNotificationRead 标记通知已读
func (s *interactionService) MarkNotificationRead(subject, notificationID string) error {
	user, err := s.identity.Resolve(subject)
	if err != nil {
		return err
	}
	return s.repo.MarkNotificationRead(notificationID, user.UserID)
}
