package repository

import (
	"errors"

	"studyshare/internal/domain/interaction/model"
	"studyshare/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository 互动日志 + 评论 + 评分 + 通知的存储层
type InteractionRepository interface {
	// 互动日志
	ToggleInteraction(userID string, contentType model.ContentType, contentID string, interactionType model.InteractionType) (bool, error)
	CreateInteraction(i *model.Interaction) error
	CountInteractions(contentType model.ContentType, contentID string, interactionType model.InteractionType) (int64, error)
	RebuildLikeCount(contentType model.ContentType, contentID string) error

	// 评论
	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	ListTopLevelComments(contentType model.ContentType, contentID string) ([]model.Comment, error)
	ListReplies(parentID string) ([]model.Comment, error)

	// 评分
	UpsertRating(rating *model.Rating) error

	// 通知
	CreateNotification(n *model.Notification) error
	ListNotifications(userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error)
	MarkNotificationRead(id, userID string) error
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// counterTarget 互动类型对应的计数表和列
// 内容模型分散在各自的 domain 包，这里用表名寻址避免反向依赖
func counterTarget(contentType model.ContentType, interactionType model.InteractionType) (table, column string, err error) {
	switch interactionType {
	case model.InteractionLike:
		switch contentType {
		case model.ContentTypeAssignment:
			return "documents", "like_count", nil
		case model.ContentTypeSolution:
			return "solutions", "like_count", nil
		case model.ContentTypeTutorial:
			return "tutorials", "like_count", nil
		case model.ContentTypeComment:
			return "comments", "like_count", nil
		}
	case model.InteractionBookmark:
		if contentType == model.ContentTypeTutorial {
			return "tutorials", "bookmark_count", nil
		}
	}
	return "", "", errs.ErrInvalidArgument
}

// ToggleInteraction 切换 like/bookmark 状态
// 互动行的增删和计数列更新在同一事务内完成，返回切换后的状态
func (r *interactionRepository) ToggleInteraction(userID string, contentType model.ContentType, contentID string, interactionType model.InteractionType) (bool, error) {
	table, column, err := counterTarget(contentType, interactionType)
	if err != nil {
		return false, err
	}

	var active bool
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Interaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND content_type = ? AND content_id = ? AND interaction_type = ?",
				userID, contentType, contentID, interactionType).
			First(&existing).Error

		switch {
		case err == nil:
			// 已存在，取消：删除互动行并回退计数
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			result := tx.Table(table).Where("id = ? AND "+column+" > 0", contentID).
				UpdateColumn(column, gorm.Expr(column+" - 1"))
			if result.Error != nil {
				return result.Error
			}
			active = false
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			// 不存在，新增：写入互动行并增加计数
			record := &model.Interaction{
				UserID:          userID,
				ContentType:     contentType,
				ContentID:       contentID,
				InteractionType: interactionType,
			}
			if err := tx.Create(record).Error; err != nil {
				return err
			}
			result := tx.Table(table).Where("id = ?", contentID).
				UpdateColumn(column, gorm.Expr(column+" + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errs.ErrNotFound
			}
			active = true
			return nil

		default:
			return err
		}
	})
	return active, err
}

// CreateInteraction 追加一条互动事件（异步写入池使用）
func (r *interactionRepository) CreateInteraction(i *model.Interaction) error {
	return r.db.Create(i).Error
}

// CountInteractions 统计互动日志中的事件数
func (r *interactionRepository) CountInteractions(contentType model.ContentType, contentID string, interactionType model.InteractionType) (int64, error) {
	var count int64
	err := r.db.Model(&model.Interaction{}).
		Where("content_type = ? AND content_id = ? AND interaction_type = ?", contentType, contentID, interactionType).
		Count(&count).Error
	return count, err
}

// RebuildLikeCount 从互动日志重建冗余点赞计数（维护/校验工具）
func (r *interactionRepository) RebuildLikeCount(contentType model.ContentType, contentID string) error {
	table, column, err := counterTarget(contentType, model.InteractionLike)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Interaction{}).
			Where("content_type = ? AND content_id = ? AND interaction_type = ?",
				contentType, contentID, model.InteractionLike).
			Count(&count).Error; err != nil {
			return err
		}

		result := tx.Table(table).Where("id = ?", contentID).UpdateColumn(column, count)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

// CreateComment 创建评论
func (r *interactionRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID 根据ID获取评论
func (r *interactionRepository) GetCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevelComments 顶层评论，最新在前
func (r *interactionRepository) ListTopLevelComments(contentType model.ContentType, contentID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("content_type = ? AND content_id = ? AND parent_id IS NULL", contentType, contentID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ListReplies 直接回复，最早在前
func (r *interactionRepository) ListReplies(parentID string) ([]model.Comment, error) {
	var replies []model.Comment
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// ratingTarget 评分冗余字段所在的表
func ratingTarget(contentType model.ContentType) (string, error) {
	switch contentType {
	case model.ContentTypeSolution:
		return "solutions", nil
	case model.ContentTypeTutorial:
		return "tutorials", nil
	case model.ContentTypeAssignment:
		return "documents", nil
	}
	return "", errs.ErrInvalidArgument
}

// UpsertRating 写入或覆盖评分，并在同一事务内重算目标的平均分和评分数
func (r *interactionRepository) UpsertRating(rating *model.Rating) error {
	table, err := ratingTarget(rating.ContentType)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_type"}, {Name: "content_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "review", "updated_at"}),
		}).Create(rating).Error; err != nil {
			return err
		}

		var agg struct {
			Count int64
			Avg   float64
		}
		if err := tx.Model(&model.Rating{}).
			Select("COUNT(*) AS count, COALESCE(AVG(stars), 0) AS avg").
			Where("content_type = ? AND content_id = ?", rating.ContentType, rating.ContentID).
			Scan(&agg).Error; err != nil {
			return err
		}

		result := tx.Table(table).Where("id = ?", rating.ContentID).UpdateColumns(map[string]interface{}{
			"rating":       agg.Avg,
			"rating_count": agg.Count,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

// CreateNotification 创建通知
func (r *interactionRepository) CreateNotification(n *model.Notification) error {
	return r.db.Create(n).Error
}

// ListNotifications 用户通知列表（分页，最新在前）
func (r *interactionRepository) ListNotifications(userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	query := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkNotificationRead 标记已读，只允许通知属主操作
func (r *interactionRepository) MarkNotificationRead(id, userID string) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
