package response

import (
	"errors"
	"net/http"

	"studyshare/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`    // 业务码
	Message string      `json:"message"` // 提示信息
	Data    interface{} `json:"data"`    // 数据
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}

// Fail 业务失败响应 (HTTP 200, 业务码非 0)
func Fail(c *gin.Context, errCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}

// HandleError 将 service 层哨兵错误映射为统一响应
// 每个 handler 都要处理同样的五种错误，集中在这里避免重复
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		Error(c, http.StatusUnauthorized, ErrAuthFailed, "authentication required")
	case errors.Is(err, errs.ErrUserNotFound):
		Error(c, http.StatusUnauthorized, ErrUserNotSynced, "user not registered")
	case errors.Is(err, errs.ErrNotFound):
		Error(c, http.StatusNotFound, ErrContentNotFound, "resource not found")
	case errors.Is(err, errs.ErrPermissionDenied):
		Error(c, http.StatusForbidden, ErrNoPermission, "permission denied")
	case errors.Is(err, errs.ErrInvalidArgument):
		Error(c, http.StatusBadRequest, ErrInvalidParam, err.Error())
	default:
		Error(c, http.StatusInternalServerError, ErrServerInternal, err.Error())
	}
}
