package handler

import (
	"net/http"

	"studyshare/internal/domain/interaction/model"
	"studyshare/internal/domain/interaction/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"
	"studyshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	service service.InteractionService
}

func NewInteractionHandler(s service.InteractionService) *InteractionHandler {
	return &InteractionHandler{service: s}
}

// LikeInput 点赞输入
type LikeInput struct {
	ContentType string `json:"contentType" binding:"required,oneof=assignment solution tutorial challenge comment"`
	ContentID   string `json:"contentId" binding:"required"`
}

// BookmarkInput 收藏输入
type BookmarkInput struct {
	ContentID string `json:"contentId" binding:"required"`
}

// CommentInput 评论输入
type CommentInput struct {
	Content     string  `json:"content" binding:"required"`
	ContentType string  `json:"contentType" binding:"required,oneof=assignment solution tutorial challenge comment"`
	ContentID   string  `json:"contentId" binding:"required"`
	ParentID    *string `json:"parentId"`
}

// RateInput 评分输入
type RateInput struct {
	ContentType string `json:"contentType" binding:"required,oneof=solution tutorial"`
	ContentID   string `json:"contentId" binding:"required"`
	Stars       int    `json:"stars" binding:"required,min=1,max=5"`
	Review      string `json:"review"`
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞/取消点赞
// @Tags Interaction
// @Accept json
// @Produce json
// @Param input body LikeInput true "点赞目标"
// @Success 200 {object} response.Response{data=bool} "切换后的状态"
// @Router /interactions/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	var input LikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	liked, err := h.service.ToggleLike(middleware.CurrentSubject(c), model.ContentType(input.ContentType), input.ContentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, liked)
}

// ToggleBookmark 收藏/取消收藏教程
// @Summary 收藏/取消收藏
// @Tags Interaction
// @Accept json
// @Produce json
// @Param input body BookmarkInput true "收藏目标"
// @Success 200 {object} response.Response{data=bool} "切换后的状态"
// @Router /interactions/bookmark [post]
func (h *InteractionHandler) ToggleBookmark(c *gin.Context) {
	var input BookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	bookmarked, err := h.service.ToggleBookmark(middleware.CurrentSubject(c), input.ContentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, bookmarked)
}

// GetComments 获取评论列表（顶层 + 一层回复）
// @Summary 获取评论列表
// @Tags Interaction
// @Param contentType query string true "内容类型"
// @Param contentId query string true "内容ID"
// @Success 200 {object} response.Response{data=[]model.CommentThread}
// @Router /comments [get]
func (h *InteractionHandler) GetComments(c *gin.Context) {
	contentType := c.Query("contentType")
	contentID := c.Query("contentId")
	if contentType == "" || contentID == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "contentType and contentId are required")
		return
	}

	threads, err := h.service.ListComments(model.ContentType(contentType), contentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, threads)
}

// AddComment 发表评论或回复
// @Summary 发表评论
// @Tags Interaction
// @Accept json
// @Produce json
// @Param input body CommentInput true "评论内容"
// @Success 200 {object} model.Comment
// @Router /comments [post]
func (h *InteractionHandler) AddComment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.CreateComment(middleware.CurrentSubject(c),
		model.ContentType(input.ContentType), input.ContentID, input.Content, input.ParentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, comment)
}

// ToggleCommentLike 点赞/取消点赞评论
// @Summary 点赞评论
// @Tags Interaction
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response{data=bool}
// @Router /comments/{id}/like [post]
func (h *InteractionHandler) ToggleCommentLike(c *gin.Context) {
	liked, err := h.service.ToggleLike(middleware.CurrentSubject(c), model.ContentTypeComment, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, liked)
}

// RateContent 评分
// @Summary 给题解/教程评分
// @Tags Interaction
// @Accept json
// @Produce json
// @Param input body RateInput true "评分"
// @Success 200 {string} string "success"
// @Router /interactions/rate [post]
func (h *InteractionHandler) RateContent(c *gin.Context) {
	var input RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	err := h.service.RateContent(middleware.CurrentSubject(c),
		model.ContentType(input.ContentType), input.ContentID, input.Stars, input.Review)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// GetNotifications 当前用户的通知列表
// @Summary 通知列表
// @Tags Interaction
// @Param unread query bool false "只看未读"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /notifications [get]
func (h *InteractionHandler) GetNotifications(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	offset, limit := p.GetPageOffset()
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.ListNotifications(middleware.CurrentSubject(c), unreadOnly, offset, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  notifications,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// MarkNotificationRead 标记通知已读
// @Summary 标记通知已读
// @Tags Interaction
// @Param id path string true "通知ID"
// @Success 200 {string} string "success"
// @Router /notifications/{id}/read [put]
func (h *InteractionHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.service.MarkNotificationRead(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}
