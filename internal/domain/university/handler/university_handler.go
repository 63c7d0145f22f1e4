package handler

import (
	"net/http"
	"strconv"

	"studyshare/internal/domain/university/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/pkg/response"

	"github.com/gin-gonic/gin"
)

type UniversityHandler struct {
	service service.UniversityService
}

func NewUniversityHandler(s service.UniversityService) *UniversityHandler {
	return &UniversityHandler{service: s}
}

// GetUniversities 学校列表
// @Summary 学校列表（支持国家过滤与名称搜索）
// @Tags University
// @Param search query string false "名称搜索"
// @Param country query string false "国家"
// @Param limit query int false "条数，缺省 50"
// @Success 200 {object} response.Response{data=[]model.University}
// @Router /universities [get]
func (h *UniversityHandler) GetUniversities(c *gin.Context) {
	universities, err := h.service.List(c.Query("search"), c.Query("country"), parseLimit(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, universities)
}

// GetUniversity 学校详情
// @Summary 学校详情
// @Tags University
// @Param id path string true "学校ID"
// @Success 200 {object} model.University "不存在时 data 为 null"
// @Router /universities/{id} [get]
func (h *UniversityHandler) GetUniversity(c *gin.Context) {
	university, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, university)
}

// CreateUniversity 创建学校
// @Summary 创建学校
// @Tags University
// @Accept json
// @Produce json
// @Param input body service.CreateUniversityInput true "学校"
// @Success 200 {object} model.University
// @Router /universities [post]
func (h *UniversityHandler) CreateUniversity(c *gin.Context) {
	var input service.CreateUniversityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	university, err := h.service.Create(middleware.CurrentSubject(c), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, university)
}

// GetCourses 学校下的课程
// @Summary 学校课程列表
// @Tags University
// @Param id path string true "学校ID"
// @Success 200 {object} response.Response{data=[]model.Course}
// @Router /universities/{id}/courses [get]
func (h *UniversityHandler) GetCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, courses)
}

// CreateCourse 创建课程
// @Summary 创建课程
// @Tags University
// @Accept json
// @Produce json
// @Param input body service.CreateCourseInput true "课程"
// @Success 200 {object} model.Course
// @Router /courses [post]
func (h *UniversityHandler) CreateCourse(c *gin.Context) {
	var input service.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	course, err := h.service.CreateCourse(middleware.CurrentSubject(c), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, course)
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
