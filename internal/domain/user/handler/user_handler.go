package handler

import (
	"net/http"

	"studyshare/internal/domain/user/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// SyncInput 身份同步输入（资料来自身份提供商）
type SyncInput struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Avatar string `json:"avatar"`
}

// SyncIdentity 登录后同步身份
// @Summary 创建或刷新当前用户
// @Tags User
// @Accept json
// @Produce json
// @Param input body SyncInput true "身份资料"
// @Success 200 {object} model.User
// @Router /auth/sync [post]
func (h *UserHandler) SyncIdentity(c *gin.Context) {
	var input SyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.SyncIdentity(middleware.CurrentSubject(c), input.Name, input.Email, input.Avatar)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}

// LookupByAuthSubject 按外部身份标识查用户
// @Summary 按外部身份标识查用户
// @Tags User
// @Param authSubject query string true "外部身份标识"
// @Success 200 {object} model.User "未注册时 data 为 null"
// @Router /users/lookup [get]
func (h *UserHandler) LookupByAuthSubject(c *gin.Context) {
	subject := c.Query("authSubject")
	if subject == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "authSubject is required")
		return
	}

	user, err := h.service.GetByAuthSubject(subject)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}

// GetProfile 用户主页
// @Summary 用户主页（资料 + 文档统计）
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} model.Profile "用户不存在时 data 为 null"
// @Router /users/{id}/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新当前用户资料
// @Summary 更新当前用户资料
// @Tags User
// @Accept json
// @Produce json
// @Param input body service.ProfileUpdate true "要修改的字段"
// @Success 200 {object} model.User
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update service.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(middleware.CurrentSubject(c), update)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}
