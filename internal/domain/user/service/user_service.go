package service

import (
	"errors"
	"time"

	"studyshare/internal/domain/user/model"
	"studyshare/internal/domain/user/repository"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"

	"gorm.io/gorm"
)

// ProfileUpdate 用户资料局部更新，nil 字段不修改
type ProfileUpdate struct {
	Name       *string `json:"name"`
	Avatar     *string `json:"avatar"`
	University *string `json:"university"`
	Course     *string `json:"course"`
	Year       *int    `json:"year"`
	Bio        *string `json:"bio"`
	Github     *string `json:"github"`
	Linkedin   *string `json:"linkedin"`
	Website    *string `json:"website"`
}

// UserService 用户服务接口
// 同时实现 identity.Resolver，供其他模块解析当前用户
type UserService interface {
	identity.Resolver

	SyncIdentity(subject, name, email, avatar string) (*model.User, error)
	GetByAuthSubject(subject string) (*model.User, error)
	GetProfile(userID string) (*model.Profile, error)
	UpdateProfile(subject string, update ProfileUpdate) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Resolve 把外部身份标识解析为本地用户（identity.Resolver 实现）
func (s *userService) Resolve(subject string) (*identity.Identity, error) {
	if subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	user, err := s.repo.GetByAuthSubject(subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	return &identity.Identity{
		UserID:      user.ID,
		AuthSubject: user.AuthSubject,
		Role:        user.Role,
		JoinedAt:    user.JoinedAt,
	}, nil
}

// SyncIdentity 身份同步：登录后用身份提供商的资料创建或刷新本地用户
// 以 auth_subject 为幂等键的单条 upsert，重复调用只覆盖 name/email/avatar
func (s *userService) SyncIdentity(subject, name, email, avatar string) (*model.User, error) {
	if subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	user := &model.User{
		AuthSubject: subject,
		Name:        name,
		Email:       email,
		Avatar:      avatar,
		Role:        model.RoleStudent,
		JoinedAt:    time.Now(),
	}
	if err := s.repo.UpsertByAuthSubject(user); err != nil {
		return nil, err
	}

	// upsert 命中已有行时不回填主键，重新按 subject 取一次
	return s.repo.GetByAuthSubject(subject)
}

// GetByAuthSubject 查找外部身份对应的用户，未注册返回 nil 而非错误
func (s *userService) GetByAuthSubject(subject string) (*model.User, error) {
	if subject == "" {
		return nil, nil
	}
	user, err := s.repo.GetByAuthSubject(subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetProfile 用户主页：基本资料 + 文档数 + 总下载量，用户不存在返回 nil
func (s *userService) GetProfile(userID string) (*model.Profile, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	documents, downloads, err := s.repo.GetDocumentStats(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		User:           *user,
		DocumentsCount: documents,
		TotalDownloads: downloads,
	}, nil
}

// UpdateProfile 更新当前用户资料，只写入请求中出现的字段
func (s *userService) UpdateProfile(subject string, update ProfileUpdate) (*model.User, error) {
	current, err := s.Resolve(subject)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Avatar != nil {
		updates["avatar"] = *update.Avatar
	}
	if update.University != nil {
		updates["university"] = *update.University
	}
	if update.Course != nil {
		updates["course"] = *update.Course
	}
	if update.Year != nil {
		updates["year"] = *update.Year
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.Github != nil {
		updates["github"] = *update.Github
	}
	if update.Linkedin != nil {
		updates["linkedin"] = *update.Linkedin
	}
	if update.Website != nil {
		updates["website"] = *update.Website
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateFields(current.UserID, updates); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(current.UserID)
}
