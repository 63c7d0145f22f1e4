package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserNotFound   = 10001
	ErrAuthFailed     = 10002
	ErrTokenInvalid   = 10003
	ErrNoPermission   = 10004
	ErrUserNotSynced  = 10005

	// 内容模块错误 200xx
	ErrContentNotFound = 20001
	ErrContentType     = 20002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
