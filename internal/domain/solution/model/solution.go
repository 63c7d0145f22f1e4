package model

import (
	"time"

	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	baseModel "studyshare/pkg/model"
)

// 难度等级
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Solution 题解
type Solution struct {
	baseModel.BaseModel
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Content     string `gorm:"type:text" json:"content"`
	Code        string `gorm:"type:text" json:"code,omitempty"`
	Language    string `json:"language,omitempty"`

	AuthorID     string   `gorm:"index;type:uuid" json:"authorId"`
	AssignmentID string   `gorm:"index;type:uuid" json:"assignmentId,omitempty"`
	CategoryID   string   `gorm:"index;type:uuid" json:"categoryId,omitempty"`
	TagIDs       []string `gorm:"type:jsonb;serializer:json" json:"tagIds,omitempty"`

	Difficulty  string   `gorm:"index" json:"difficulty,omitempty"`
	Attachments []string `gorm:"type:jsonb;serializer:json" json:"attachments,omitempty"`
	GithubRepo  string   `json:"githubRepo,omitempty"`
	LiveDemo    string   `json:"liveDemo,omitempty"`

	IsPublic bool `gorm:"index" json:"isPublic"`

	ViewCount     int64   `json:"viewCount"`
	LikeCount     int64   `json:"likeCount"`
	DownloadCount int64   `json:"downloadCount"`
	Rating        float64 `json:"rating"`
	RatingCount   int64   `json:"ratingCount"`

	IsApproved bool       `gorm:"index" json:"isApproved"`
	ApprovedBy string     `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

func (Solution) TableName() string {
	return "solutions"
}

// SolutionWithDetails 题解详情（带作者/分类/标签）
type SolutionWithDetails struct {
	Solution
	Author   *userModel.User         `json:"author,omitempty"`
	Category *taxonomyModel.Category `json:"category,omitempty"`
	Tags     []taxonomyModel.Tag     `json:"tags,omitempty"`
}
