package model

import (
	baseModel "studyshare/pkg/model"
)

// ContentType 可互动内容的类型标签
// assignment 是历史遗留命名，指 documents 表里的通用文档
type ContentType string

const (
	ContentTypeAssignment ContentType = "assignment"
	ContentTypeSolution   ContentType = "solution"
	ContentTypeTutorial   ContentType = "tutorial"
	ContentTypeChallenge  ContentType = "challenge"
	ContentTypeComment    ContentType = "comment"
)

// Valid 是否为已知类型标签
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeAssignment, ContentTypeSolution, ContentTypeTutorial,
		ContentTypeChallenge, ContentTypeComment:
		return true
	}
	return false
}

// InteractionType 互动动作类型
type InteractionType string

const (
	InteractionLike     InteractionType = "like"
	InteractionBookmark InteractionType = "bookmark"
	InteractionView     InteractionType = "view"
	InteractionDownload InteractionType = "download"
)

// Interaction 互动日志，(user, content, type) 的 like/bookmark 行同时充当去重标记
type Interaction struct {
	baseModel.BaseModel
	UserID          string          `gorm:"index;type:uuid" json:"userId"`
	ContentType     ContentType     `gorm:"index" json:"contentType"`
	ContentID       string          `gorm:"index;type:uuid" json:"contentId"`
	InteractionType InteractionType `gorm:"index" json:"interactionType"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// Comment 评论，支持一级回复（ParentID 指向顶层评论）
type Comment struct {
	baseModel.BaseModel
	Content     string      `gorm:"type:text" json:"content"`
	AuthorID    string      `gorm:"index;type:uuid" json:"authorId"`
	ContentType ContentType `gorm:"index" json:"contentType"`
	ContentID   string      `gorm:"index;type:uuid" json:"contentId"`
	ParentID    *string     `gorm:"index;type:uuid" json:"parentId,omitempty"`
	IsApproved  bool        `json:"isApproved"`
	LikeCount   int64       `json:"likeCount"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentThread 顶层评论及其直接回复
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// Rating 用户对内容的评分，(user, content) 唯一，重复评分覆盖
type Rating struct {
	baseModel.BaseModel
	UserID      string      `gorm:"index;type:uuid" json:"userId"`
	ContentType ContentType `json:"contentType"`
	ContentID   string      `gorm:"index;type:uuid" json:"contentId"`
	Stars       int         `gorm:"column:stars" json:"stars"`
	Review      string      `gorm:"type:text" json:"review,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Notification 站内通知
type Notification struct {
	baseModel.BaseModel
	UserID    string `gorm:"index;type:uuid" json:"userId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	RelatedID string `gorm:"type:uuid" json:"relatedId,omitempty"`
	IsRead    bool   `gorm:"index" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}

const (
	NotificationTypeApproval = "approval"
	NotificationTypeReply    = "reply"
)
