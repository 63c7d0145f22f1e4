package handler

import (
	"net/http"
	"strconv"

	interactionModel "studyshare/internal/domain/interaction/model"
	interactionService "studyshare/internal/domain/interaction/service"
	"studyshare/internal/domain/solution/repository"
	"studyshare/internal/domain/solution/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

type SolutionHandler struct {
	service      service.SolutionService
	interactions interactionService.InteractionService
}

func NewSolutionHandler(s service.SolutionService, i interactionService.InteractionService) *SolutionHandler {
	return &SolutionHandler{service: s, interactions: i}
}

// GetSolutions 题解列表
// @Summary 公开题解列表
// @Tags Solution
// @Param categoryId query string false "分类"
// @Param difficulty query string false "难度"
// @Param sortBy query string false "rating/views/newest"
// @Param limit query int false "条数，缺省 20"
// @Success 200 {object} response.Response{data=[]model.SolutionWithDetails}
// @Router /solutions [get]
func (h *SolutionHandler) GetSolutions(c *gin.Context) {
	filter := repository.SolutionFilter{
		CategoryID: c.Query("categoryId"),
		Difficulty: c.Query("difficulty"),
		SortBy:     c.Query("sortBy"),
		Limit:      parseLimit(c),
	}

	solutions, err := h.service.List(filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, solutions)
}

// GetFeaturedSolutions 精选题解
// @Summary 精选题解（公开且已审核，带作者与分类）
// @Tags Solution
// @Success 200 {object} response.Response{data=[]model.SolutionWithDetails}
// @Router /solutions/featured [get]
func (h *SolutionHandler) GetFeaturedSolutions(c *gin.Context) {
	solutions, err := h.service.ListFeatured()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, solutions)
}

// GetSolution 题解详情
// @Summary 题解详情
// @Tags Solution
// @Param id path string true "题解ID"
// @Success 200 {object} model.SolutionWithDetails "不存在时 data 为 null"
// @Router /solutions/{id} [get]
func (h *SolutionHandler) GetSolution(c *gin.Context) {
	solution, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, solution)
}

// CreateSolution 创建题解
// @Summary 发布题解
// @Tags Solution
// @Accept json
// @Produce json
// @Param input body service.CreateSolutionInput true "题解"
// @Success 200 {object} model.Solution
// @Router /solutions [post]
func (h *SolutionHandler) CreateSolution(c *gin.Context) {
	var input service.CreateSolutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	solution, err := h.service.Create(middleware.CurrentSubject(c), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, solution)
}

// UpdateSolution 更新题解
// @Summary 更新题解（作者或审核角色）
// @Tags Solution
// @Accept json
// @Produce json
// @Param id path string true "题解ID"
// @Param input body service.UpdateSolutionInput true "要修改的字段"
// @Success 200 {object} model.Solution
// @Router /solutions/{id} [put]
func (h *SolutionHandler) UpdateSolution(c *gin.Context) {
	var input service.UpdateSolutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	solution, err := h.service.Update(middleware.CurrentSubject(c), c.Param("id"), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, solution)
}

// ApproveSolution 审核通过
// @Summary 审核题解
// @Tags Solution
// @Param id path string true "题解ID"
// @Success 200 {string} string "success"
// @Router /solutions/{id}/approve [put]
func (h *SolutionHandler) ApproveSolution(c *gin.Context) {
	if err := h.service.Approve(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// IncrementView 记录一次浏览
// @Summary 记录题解浏览
// @Tags Solution
// @Param id path string true "题解ID"
// @Success 200 {string} string "success"
// @Router /solutions/{id}/view [post]
func (h *SolutionHandler) IncrementView(c *gin.Context) {
	if err := h.service.IncrementView(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// ToggleLike 点赞/取消点赞题解
// @Summary 点赞题解
// @Tags Solution
// @Param id path string true "题解ID"
// @Success 200 {object} response.Response{data=bool}
// @Router /solutions/{id}/like [post]
func (h *SolutionHandler) ToggleLike(c *gin.Context) {
	liked, err := h.interactions.ToggleLike(middleware.CurrentSubject(c),
		interactionModel.ContentTypeSolution, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, liked)
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
