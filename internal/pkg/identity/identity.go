package identity

import "time"

// Identity 已解析的当前用户（auth subject 对应的本地用户行）
type Identity struct {
	UserID      string
	AuthSubject string
	Role        string
	JoinedAt    time.Time
}

// CanModerate 是否有审核权限
func (i *Identity) CanModerate() bool {
	return i.Role == "admin" || i.Role == "instructor"
}

// Resolver 将外部身份标识解析为本地用户
// 由 user 模块实现，其他模块通过 ModuleContext 获取，避免直接依赖 user service
//
// 约定：subject 为空返回 errs.ErrUnauthenticated；
// subject 合法但没有对应用户行返回 errs.ErrUserNotFound
type Resolver interface {
	Resolve(subject string) (*Identity, error)
}
