package handler

import (
	"net/http"
	"strconv"

	"studyshare/internal/domain/document/repository"
	"studyshare/internal/domain/document/service"
	interactionModel "studyshare/internal/domain/interaction/model"
	interactionService "studyshare/internal/domain/interaction/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service      service.DocumentService
	interactions interactionService.InteractionService
}

func NewDocumentHandler(s service.DocumentService, i interactionService.InteractionService) *DocumentHandler {
	return &DocumentHandler{service: s, interactions: i}
}

// GetDocuments 文档列表
// @Summary 文档列表
// @Tags Document
// @Param search query string false "标题搜索"
// @Param type query string false "文档类型，All 表示不过滤"
// @Param universityId query string false "学校"
// @Param courseId query string false "课程"
// @Param sortBy query string false "rating/views/newest"
// @Param limit query int false "条数，缺省 20"
// @Success 200 {object} response.Response{data=[]model.Document}
// @Router /documents [get]
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	filter := repository.DocumentFilter{
		Search:       c.Query("search"),
		DocumentType: c.Query("type"),
		UniversityID: c.Query("universityId"),
		CourseID:     c.Query("courseId"),
		SortBy:       c.Query("sortBy"),
		Limit:        parseLimit(c),
	}

	documents, err := h.service.List(filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, documents)
}

// GetFeaturedDocuments 首页精选文档
// @Summary 精选文档（已审核且公开）
// @Tags Document
// @Success 200 {object} response.Response{data=[]model.Document}
// @Router /documents/featured [get]
func (h *DocumentHandler) GetFeaturedDocuments(c *gin.Context) {
	documents, err := h.service.ListFeatured()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, documents)
}

// GetDocument 文档详情
// @Summary 文档详情
// @Tags Document
// @Param id path string true "文档ID"
// @Success 200 {object} model.DocumentWithDetails "不存在时 data 为 null"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, document)
}

// CreateDocument 创建文档
// @Summary 上传文档元数据
// @Tags Document
// @Accept json
// @Produce json
// @Param input body service.CreateDocumentInput true "文档"
// @Success 200 {object} model.Document
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var input service.CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	document, err := h.service.Create(middleware.CurrentSubject(c), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, document)
}

// ToggleLike 点赞/取消点赞文档
// @Summary 点赞文档
// @Tags Document
// @Param id path string true "文档ID"
// @Success 200 {object} response.Response{data=bool} "切换后的状态"
// @Router /documents/{id}/like [post]
func (h *DocumentHandler) ToggleLike(c *gin.Context) {
	// 文档在互动日志里沿用 assignment 类型标签
	liked, err := h.interactions.ToggleLike(middleware.CurrentSubject(c),
		interactionModel.ContentTypeAssignment, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, liked)
}

// RecordDownload 记录一次下载
// @Summary 记录文档下载
// @Tags Document
// @Param id path string true "文档ID"
// @Success 200 {string} string "success"
// @Router /documents/{id}/download [post]
func (h *DocumentHandler) RecordDownload(c *gin.Context) {
	if err := h.service.RecordDownload(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
}

// ApproveDocument 审核通过
// @Summary 审核文档
// @Tags Document
// @Param id path string true "文档ID"
// @Success 200 {string} string "success"
// @Router /documents/{id}/approve [put]
func (h *DocumentHandler) ApproveDocument(c *gin.Context) {
	if err := h.service.Approve(middleware.CurrentSubject(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "success")
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
