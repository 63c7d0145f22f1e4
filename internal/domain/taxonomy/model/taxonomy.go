package model

import (
	baseModel "studyshare/pkg/model"
)

// Category 内容分类
type Category struct {
	baseModel.BaseModel
	Name        string `json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    bool   `gorm:"index" json:"isActive"`
}

func (Category) TableName() string {
	return "categories"
}

// Tag 内容标签，UsageCount 在内容引用标签时原子累加
type Tag struct {
	baseModel.BaseModel
	Name        string `json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	UsageCount  int64  `json:"usageCount"`
}

func (Tag) TableName() string {
	return "tags"
}
