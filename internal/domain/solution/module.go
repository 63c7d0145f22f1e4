package solution

import (
	interactionRepo "studyshare/internal/domain/interaction/repository"
	interactionService "studyshare/internal/domain/interaction/service"
	"studyshare/internal/domain/solution/handler"
	"studyshare/internal/domain/solution/repository"
	"studyshare/internal/domain/solution/service"
	taxonomyRepo "studyshare/internal/domain/taxonomy/repository"
	taxonomyService "studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// SolutionModule 题解模块
type SolutionModule struct{}

func init() {
	registry.Register(&SolutionModule{})
}

func (m *SolutionModule) Name() string {
	return "solution"
}

func (m *SolutionModule) Priority() int {
	return 21
}

func (m *SolutionModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	sRepo := repository.NewSolutionRepository(ctx.DB)
	tService := taxonomyService.NewTaxonomyService(taxonomyRepo.NewTaxonomyRepository(ctx.DB))
	iRepo := interactionRepo.NewInteractionRepository(ctx.DB)
	sService := service.NewSolutionService(sRepo, tService, iRepo, ctx.Identity, ctx.Events)
	iService := interactionService.NewInteractionService(iRepo, ctx.Identity)
	sHandler := handler.NewSolutionHandler(sService, iService)

	// 2. 路由注册
	setupRoutes(ctx.Router, sHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.SolutionHandler) {
	g := r.Group("/solutions")

	// Public
	g.GET("", h.GetSolutions)
	g.GET("/featured", h.GetFeaturedSolutions)
	g.GET("/:id", h.GetSolution)

	// 浏览匿名可用，带 token 时额外记录事件归属
	g.POST("/:id/view", middleware.OptionalAuthMiddleware(), h.IncrementView)

	// Requires login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreateSolution)
		auth.PUT("/:id", h.UpdateSolution)
		auth.PUT("/:id/approve", h.ApproveSolution)
		auth.POST("/:id/like", h.ToggleLike)
	}
}
