package model

import (
	"time"

	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	baseModel "studyshare/pkg/model"
)

// Tutorial 教程
type Tutorial struct {
	baseModel.BaseModel
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Content     string `gorm:"type:text" json:"content"`

	AuthorID   string   `gorm:"index;type:uuid" json:"authorId"`
	CategoryID string   `gorm:"index;type:uuid" json:"categoryId,omitempty"`
	TagIDs     []string `gorm:"type:jsonb;serializer:json" json:"tagIds,omitempty"`

	Difficulty         string   `gorm:"index" json:"difficulty,omitempty"`
	EstimatedTime      int      `json:"estimatedTime,omitempty"` // 分钟
	Prerequisites      []string `gorm:"type:jsonb;serializer:json" json:"prerequisites,omitempty"`
	LearningObjectives []string `gorm:"type:jsonb;serializer:json" json:"learningObjectives,omitempty"`
	Attachments        []string `gorm:"type:jsonb;serializer:json" json:"attachments,omitempty"`
	GithubRepo         string   `json:"githubRepo,omitempty"`
	VideoURL           string   `json:"videoUrl,omitempty"`

	IsPublic   bool `gorm:"index" json:"isPublic"`
	IsFeatured bool `gorm:"index" json:"isFeatured"`

	ViewCount     int64   `json:"viewCount"`
	LikeCount     int64   `json:"likeCount"`
	BookmarkCount int64   `json:"bookmarkCount"`
	Rating        float64 `json:"rating"`
	RatingCount   int64   `json:"ratingCount"`

	IsApproved bool       `gorm:"index" json:"isApproved"`
	ApprovedBy string     `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}

// TutorialWithDetails 教程详情（带作者/分类/标签）
type TutorialWithDetails struct {
	Tutorial
	Author   *userModel.User         `json:"author,omitempty"`
	Category *taxonomyModel.Category `json:"category,omitempty"`
	Tags     []taxonomyModel.Tag     `json:"tags,omitempty"`
}
