package model

import (
	"time"

	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	baseModel "studyshare/pkg/model"
)

// 文档类型
const (
	DocumentTypeNotes      = "notes"
	DocumentTypeExam       = "exam"
	DocumentTypeAssignment = "assignment"
	DocumentTypeSummary    = "summary"
	DocumentTypeOther      = "other"
)

// Document 共享文档（讲义/试卷/作业等）
type Document struct {
	baseModel.BaseModel
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Content     string `gorm:"type:text" json:"content,omitempty"`

	AuthorID     string   `gorm:"index;type:uuid" json:"authorId"`
	UniversityID string   `gorm:"index;type:uuid" json:"universityId,omitempty"`
	CourseID     string   `gorm:"index;type:uuid" json:"courseId,omitempty"`
	CategoryID   string   `gorm:"index;type:uuid" json:"categoryId,omitempty"`
	TagIDs       []string `gorm:"type:jsonb;serializer:json" json:"tagIds,omitempty"`

	DocumentType string `gorm:"index" json:"documentType"`
	FileURL      string `json:"fileUrl,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	FileSize     int64  `json:"fileSize,omitempty"`
	FileType     string `json:"fileType,omitempty"`
	PageCount    int    `json:"pageCount,omitempty"`

	Semester  string `json:"semester,omitempty"`
	Year      int    `json:"year,omitempty"`
	Professor string `json:"professor,omitempty"`
	Grade     string `json:"grade,omitempty"`
	Language  string `json:"language,omitempty"`

	IsPublic  bool `json:"isPublic"`
	IsPremium bool `json:"isPremium"`

	DownloadCount int64   `json:"downloadCount"`
	ViewCount     int64   `json:"viewCount"`
	LikeCount     int64   `json:"likeCount"`
	CommentCount  int64   `json:"commentCount"`
	Rating        float64 `json:"rating"`
	RatingCount   int64   `json:"ratingCount"`

	IsApproved  bool       `gorm:"index" json:"isApproved"`
	ModeratedBy string     `gorm:"type:uuid" json:"moderatedBy,omitempty"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentWithDetails 文档详情（带作者与分类）
type DocumentWithDetails struct {
	Document
	Author   *userModel.User         `json:"author,omitempty"`
	Category *taxonomyModel.Category `json:"category,omitempty"`
}
