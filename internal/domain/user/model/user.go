package model

import (
	"time"

	baseModel "studyshare/pkg/model"
)

// 用户角色
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User 用户模型
// AuthSubject 是外部身份提供商下发的唯一标识，身份同步以它为幂等键
type User struct {
	baseModel.BaseModel
	AuthSubject string `gorm:"uniqueIndex;not null" json:"authSubject"`
	Name        string `json:"name"`
	Email       string `gorm:"index" json:"email"`
	Avatar      string `json:"avatar,omitempty"`

	University string `json:"university,omitempty"`
	Course     string `json:"course,omitempty"`
	Year       int    `json:"year,omitempty"`
	Bio        string `gorm:"type:text" json:"bio,omitempty"`
	Github     string `json:"github,omitempty"`
	Linkedin   string `json:"linkedin,omitempty"`
	Website    string `json:"website,omitempty"`

	Role       string    `gorm:"default:student" json:"role"`
	IsVerified bool      `json:"isVerified"`
	Points     int64     `json:"points"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// Profile 用户主页聚合视图
type Profile struct {
	User           User  `json:"user"`
	DocumentsCount int64 `json:"documentsCount"`
	TotalDownloads int64 `json:"totalDownloads"`
}
