package document

import (
	"studyshare/internal/domain/document/handler"
	"studyshare/internal/domain/document/repository"
	"studyshare/internal/domain/document/service"
	interactionRepo "studyshare/internal/domain/interaction/repository"
	interactionService "studyshare/internal/domain/interaction/service"
	taxonomyRepo "studyshare/internal/domain/taxonomy/repository"
	taxonomyService "studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// DocumentModule 文档模块
type DocumentModule struct{}

func init() {
	registry.Register(&DocumentModule{})
}

func (m *DocumentModule) Name() string {
	return "document"
}

func (m *DocumentModule) Priority() int {
	return 20
}

func (m *DocumentModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入（仓储无状态，跨模块直接各自构造）
	dRepo := repository.NewDocumentRepository(ctx.DB)
	tService := taxonomyService.NewTaxonomyService(taxonomyRepo.NewTaxonomyRepository(ctx.DB))
	dService := service.NewDocumentService(dRepo, tService, ctx.Identity, ctx.Events)
	iService := interactionService.NewInteractionService(interactionRepo.NewInteractionRepository(ctx.DB), ctx.Identity)
	dHandler := handler.NewDocumentHandler(dService, iService)

	// 2. 路由注册
	setupRoutes(ctx.Router, dHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.DocumentHandler) {
	g := r.Group("/documents")

	// Public
	g.GET("", h.GetDocuments)
	g.GET("/featured", h.GetFeaturedDocuments)
	g.GET("/:id", h.GetDocument)

	// 下载匿名可用，带 token 时额外记录事件归属
	g.POST("/:id/download", middleware.OptionalAuthMiddleware(), h.RecordDownload)

	// Requires login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreateDocument)
		auth.POST("/:id/like", h.ToggleLike)
		auth.PUT("/:id/approve", h.ApproveDocument)
	}
}
