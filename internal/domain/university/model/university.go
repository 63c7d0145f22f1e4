package model

import (
	baseModel "studyshare/pkg/model"
)

// University 学校
type University struct {
	baseModel.BaseModel
	Name       string `json:"name"`
	Country    string `gorm:"index" json:"country"`
	Website    string `json:"website,omitempty"`
	Logo       string `json:"logo,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

func (University) TableName() string {
	return "universities"
}

// Course 学校下的课程
type Course struct {
	baseModel.BaseModel
	Name         string `json:"name"`
	Code         string `json:"code"`
	UniversityID string `gorm:"index;type:uuid" json:"universityId"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	Faculty      string `json:"faculty,omitempty"`
	Level        string `json:"level,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
