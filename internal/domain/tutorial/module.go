package tutorial

import (
	interactionRepo "studyshare/internal/domain/interaction/repository"
	interactionService "studyshare/internal/domain/interaction/service"
	taxonomyRepo "studyshare/internal/domain/taxonomy/repository"
	taxonomyService "studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/domain/tutorial/handler"
	"studyshare/internal/domain/tutorial/repository"
	"studyshare/internal/domain/tutorial/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// TutorialModule 教程模块
type TutorialModule struct{}

func init() {
	registry.Register(&TutorialModule{})
}

func (m *TutorialModule) Name() string {
	return "tutorial"
}

func (m *TutorialModule) Priority() int {
	return 22
}

func (m *TutorialModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	tRepo := repository.NewTutorialRepository(ctx.DB)
	taxService := taxonomyService.NewTaxonomyService(taxonomyRepo.NewTaxonomyRepository(ctx.DB))
	iRepo := interactionRepo.NewInteractionRepository(ctx.DB)
	tService := service.NewTutorialService(tRepo, taxService, iRepo, ctx.Identity, ctx.Events)
	iService := interactionService.NewInteractionService(iRepo, ctx.Identity)
	tHandler := handler.NewTutorialHandler(tService, iService)

	// 2. 路由注册
	setupRoutes(ctx.Router, tHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TutorialHandler) {
	g := r.Group("/tutorials")

	// Public
	g.GET("", h.GetTutorials)
	g.GET("/featured", h.GetFeaturedTutorials)
	g.GET("/:id", h.GetTutorial)

	// 浏览匿名可用，带 token 时额外记录事件归属
	g.POST("/:id/view", middleware.OptionalAuthMiddleware(), h.IncrementView)

	// Requires login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreateTutorial)
		auth.PUT("/:id", h.UpdateTutorial)
		auth.PUT("/:id/approve", h.ApproveTutorial)
		auth.POST("/:id/like", h.ToggleLike)
		auth.POST("/:id/bookmark", h.ToggleBookmark)
	}
}
