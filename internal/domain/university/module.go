package university

import (
	"studyshare/internal/domain/university/handler"
	"studyshare/internal/domain/university/repository"
	"studyshare/internal/domain/university/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UniversityModule 学校与课程模块
type UniversityModule struct{}

func init() {
	registry.Register(&UniversityModule{})
}

func (m *UniversityModule) Name() string {
	return "university"
}

func (m *UniversityModule) Priority() int {
	return 11
}

func (m *UniversityModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	uRepo := repository.NewUniversityRepository(ctx.DB)
	uService := service.NewUniversityService(uRepo, ctx.Identity)
	uHandler := handler.NewUniversityHandler(uService)

	// 2. 路由注册
	setupRoutes(ctx.Router, uHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UniversityHandler) {
	g := r.Group("/universities")
	{
		g.GET("", h.GetUniversities)
		g.GET("/:id", h.GetUniversity)
		g.GET("/:id/courses", h.GetCourses)
		g.POST("", middleware.AuthMiddleware(), h.CreateUniversity)
	}

	r.POST("/courses", middleware.AuthMiddleware(), h.CreateCourse)
}
