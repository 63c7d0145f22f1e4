package handler

import (
	"net/http"
	"strconv"

	"studyshare/internal/domain/taxonomy/service"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	service service.TaxonomyService
}

func NewTaxonomyHandler(s service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: s}
}

// CategoryInput 创建分类输入，slug 缺省时由名称生成
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// TagInput 创建标签输入，slug 缺省时由名称生成
type TagInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GetCategories 启用中的分类列表
// @Summary 分类列表
// @Tags Taxonomy
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /categories [get]
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.ListActiveCategories()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param input body CategoryInput true "分类"
// @Success 200 {object} model.Category
// @Router /categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	category, err := h.service.CreateCategory(input.Name, input.Slug, input.Description, input.Color, input.Icon)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, category)
}

// GetTags 全部标签
// @Summary 标签列表
// @Tags Taxonomy
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /tags [get]
func (h *TaxonomyHandler) GetTags(c *gin.Context) {
	tags, err := h.service.ListTags()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tags)
}

// GetPopularTags 热门标签
// @Summary 热门标签（按使用量）
// @Tags Taxonomy
// @Param limit query int false "条数，缺省 20"
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /tags/popular [get]
func (h *TaxonomyHandler) GetPopularTags(c *gin.Context) {
	tags, err := h.service.ListPopularTags(parseLimit(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param input body TagInput true "标签"
// @Success 200 {object} model.Tag
// @Router /tags [post]
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	tag, err := h.service.CreateTag(input.Name, input.Slug, input.Description, input.Color)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tag)
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
