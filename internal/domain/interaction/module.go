package interaction

import (
	"studyshare/internal/domain/interaction/handler"
	"studyshare/internal/domain/interaction/repository"
	"studyshare/internal/domain/interaction/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// InteractionModule 互动模块（点赞/收藏/评论/评分/通知）
type InteractionModule struct{}

func init() {
	registry.Register(&InteractionModule{})
}

func (m *InteractionModule) Name() string {
	return "interaction"
}

func (m *InteractionModule) Priority() int {
	return 30
}

func (m *InteractionModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	iRepo := repository.NewInteractionRepository(ctx.DB)
	iService := service.NewInteractionService(iRepo, ctx.Identity)
	iHandler := handler.NewInteractionHandler(iService)

	// 2. 路由注册
	setupRoutes(ctx.Router, iHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.InteractionHandler) {
	// Public
	r.GET("/comments", h.GetComments)

	// Requires login
	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/comments", h.AddComment)
		auth.POST("/comments/:id/like", h.ToggleCommentLike)
		auth.POST("/interactions/like", h.ToggleLike)
		auth.POST("/interactions/bookmark", h.ToggleBookmark)
		auth.POST("/interactions/rate", h.RateContent)
		auth.GET("/notifications", h.GetNotifications)
		auth.PUT("/notifications/:id/read", h.MarkNotificationRead)
	}
}
