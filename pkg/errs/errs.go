package errs

import "errors"

// 业务哨兵错误，service 层返回，handler 层统一映射到响应码
var (
	// ErrUnauthenticated 请求没有携带有效的登录身份
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound 身份合法但尚未在本系统注册（未调用过身份同步）
	ErrUserNotFound = errors.New("user not registered")

	// ErrNotFound 操作目标不存在
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied 已登录但无权执行该操作
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument 参数通过了绑定校验但业务上不合法
	ErrInvalidArgument = errors.New("invalid argument")
)
