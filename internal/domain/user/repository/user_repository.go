package repository

import (
	"studyshare/internal/domain/user/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 接口定义
type UserRepository interface {
	UpsertByAuthSubject(user *model.User) error
	GetByAuthSubject(subject string) (*model.User, error)
	GetByID(id string) (*model.User, error)
	UpdateFields(id string, updates map[string]interface{}) error
	GetDocumentStats(authorID string) (documents int64, downloads int64, err error)
}

// userRepository 实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建新的仓库实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// UpsertByAuthSubject 身份同步写入
// auth_subject 上有唯一约束，冲突时只覆盖身份提供商下发的字段，
// 并发首次登录最多一个 INSERT 成功，其余落到 DO UPDATE
func (r *userRepository) UpsertByAuthSubject(user *model.User) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "avatar", "updated_at"}),
	}).Create(user).Error
}

// GetByAuthSubject 根据外部身份标识获取用户
func (r *userRepository) GetByAuthSubject(subject string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("auth_subject = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFields 局部更新用户资料
func (r *userRepository) UpdateFields(id string, updates map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

// GetDocumentStats 统计作者的文档数和总下载量
// 对作者名下文档的聚合扫描，推到 SQL 一次完成
func (r *userRepository) GetDocumentStats(authorID string) (int64, int64, error) {
	var stats struct {
		Documents int64
		Downloads int64
	}
	err := r.db.Table("documents").
		Select("COUNT(*) AS documents, COALESCE(SUM(download_count), 0) AS downloads").
		Where("author_id = ? AND deleted_at IS NULL", authorID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Documents, stats.Downloads, nil
}
