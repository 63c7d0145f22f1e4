package handler

import (
	"net/http"
	"strconv"

	interactionModel "studyshare/internal/domain/interaction/model"
	interactionService "studyshare/internal/domain/interaction/service"
	"studyshare/internal/domain/tutorial/repository"
	"studyshare/internal/domain/tutorial/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

type TutorialHandler struct {
	service      service.TutorialService
	interactions interactionService.InteractionService
}

func NewTutorialHandler(s service.TutorialService, i interactionService.InteractionService) *TutorialHandler {
	return &TutorialHandler{service: s, interactions: i}
}

// GetTutorials 教程列表
// @Summary 公开教程列表
// @Tags Tutorial
// @Param categoryId query string false "分类"
// @Param difficulty query string false "难度"
// @Param featured query bool false "仅精选"
// @Param sortBy query string false "rating/views/newest"
// @Param limit query int false "条数，缺省 20"
// @Success 200 {object} response.Response{data=[]model.TutorialWithDetails}
// @Router /tutorials [get]
func (h *TutorialHandler) GetTutorials(c *gin.Context) {
	filter := repository.TutorialFilter{
		CategoryID: c.Query("categoryId"),
		Difficulty: c.Query("difficulty"),
		SortBy:     c.Query("sortBy"),
		Limit:      parseLimit(c),
	}
	if raw, exists := c.GetQuery("featured"); exists {
		if featured, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &featured
		}
	}

	tutorials, err := h.service.List(filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tutorials)
}

// GetFeaturedTutorials 精选教程
// @Summary 精选教程（公开且被标记精选，带作者与分类）
// @Tags Tutorial
// @Success 200 {object} response.Response{data=[]model.TutorialWithDetails}
// @Router /tutorials/featured [get]
func (h *TutorialHandler) GetFeaturedTutorials(c *gin.Context) {
	tutorials, err := h.service.ListFeatured()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tutorials)
}

// GetTutorial 教程详情
// @Summary 教程详情
// @Tags Tutorial
// @Param id path string true "教程ID"
// @Success 200 {object} model.TutorialWithDetails "不存在时 data 为 null"
// @Router /tutorials/{id} [get]
func (h *TutorialHandler) GetTutorial(c *gin.Context) {
	tutorial, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tutorial)
}

// CreateTutorial 创建教程
// @Summary 发布教程
// @Tags Tutorial
// @Accept json
// @Produce json
// @Param input body service.CreateTutorialInput true "教程"
// @Success 200 {object} model.Tutorial
// @Router /tutorials [post]
func (h *TutorialHandler) CreateTutorial(c *gin.Context) {
	var input service.CreateTutorialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	tutorial, err := h.service.Create(middleware.CurrentSubject(c), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tutorial)
}

// UpdateTutorial 更新教程
// @Summary 更新教程（作者或审核角色）
// @Tags Tutorial
// @Accept json
// @Produce json
// @Param id path string true "教程ID"
// @Param input body service.UpdateTutorialInput true "要修改的字段"
// @Success 200 {object} model.Tutorial
// @Router /tutorials/{id} [put]
func (h *TutorialHandler) UpdateTutorial(c *gin.Context) {
	var input service.UpdateTutorialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	tutorial, err := h.service.Update(middleware.CurrentSubject(c), c.Param("id"), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tutorial)
}

// ApproveTutorial 审核通过
// @Summary 审核教程
// @Tags Tutorial
// @Param id path string true "教程ID"
// @Success 200 {string} string "success"
// @Router /tutorials/{id}/approve [put]
func (h *TutorialHandler) ApproveTutorial(c *gin.Context) {
	if err := h.service.Approve(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// IncrementView 记录一次浏览
// @Summary 记录教程浏览
// @Tags Tutorial
// @Param id path string true "教程ID"
// @Success 200 {string} string "success"
// @Router /tutorials/{id}/view [post]
func (h *TutorialHandler) IncrementView(c *gin.Context) {
	if err := h.service.IncrementView(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// ToggleLike 点赞/取消点赞教程
// @Summary 点赞教程
// @Tags Tutorial
// @Param id path string true "教程ID"
// @Success 200 {object} response.Response{data=bool}
// @Router /tutorials/{id}/like [post]
func (h *TutorialHandler) ToggleLike(c *gin.Context) {
	liked, err := h.interactions.ToggleLike(middleware.CurrentSubject(c),
		interactionModel.ContentTypeTutorial, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, liked)
}

// ToggleBookmark 收藏/取消收藏教程
// @Summary 收藏教程
// @Tags Tutorial
// @Param id path string true "教程ID"
// @Success 200 {object} response.Response{data=bool}
// @Router /tutorials/{id}/bookmark [post]
func (h *TutorialHandler) ToggleBookmark(c *gin.Context) {
	bookmarked, err := h.interactions.ToggleBookmark(middleware.CurrentSubject(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, bookmarked)
}

// parseLimit 读取 limit 查询参数，未传返回 -1（服务层替换为默认值）
func parseLimit(c *gin.Context) int {
	raw, exists := c.GetQuery("limit")
	if !exists {
		return -1
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return -1
	}
	return limit
}
