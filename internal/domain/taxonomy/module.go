package taxonomy

import (
	"studyshare/internal/domain/taxonomy/handler"
	"studyshare/internal/domain/taxonomy/repository"
	"studyshare/internal/domain/taxonomy/service"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// TaxonomyModule 分类与标签模块
type TaxonomyModule struct{}

func init() {
	registry.Register(&TaxonomyModule{})
}

func (m *TaxonomyModule) Name() string {
	return "taxonomy"
}

func (m *TaxonomyModule) Priority() int {
	return 10
}

func (m *TaxonomyModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	tRepo := repository.NewTaxonomyRepository(ctx.DB)
	tService := service.NewTaxonomyService(tRepo)
	if ctx.Cache != nil {
		tService = service.NewCachedTaxonomyService(tService, ctx.Cache)
	}
	tHandler := handler.NewTaxonomyHandler(tService)

	// 2. 路由注册
	setupRoutes(ctx.Router, tHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TaxonomyHandler) {
	r.GET("/categories", h.GetCategories)
	r.POST("/categories", h.CreateCategory)
	r.GET("/tags", h.GetTags)
	r.GET("/tags/popular", h.GetPopularTags)
	r.POST("/tags", h.CreateTag)
}
