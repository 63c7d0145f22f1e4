package user

import (
	"studyshare/internal/domain/user/handler"
	"studyshare/internal/domain/user/repository"
	"studyshare/internal/domain/user/service"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，它为其他模块提供身份解析
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	if ctx.Cache != nil {
		userService = service.NewCachedUserService(userService, ctx.Cache)
	}
	userHandler := handler.NewUserHandler(userService)

	// 2. 向后续模块暴露身份解析器
	ctx.Identity = userService

	// 3. 路由注册
	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 身份同步需要合法 token，但用户行可能还不存在
	r.POST("/auth/sync", middleware.AuthMiddleware(), h.SyncIdentity)

	userGroup := r.Group("/users")
	{
		userGroup.GET("/lookup", h.LookupByAuthSubject)
		userGroup.GET("/:id/profile", h.GetProfile)
		userGroup.PUT("/me", middleware.AuthMiddleware(), h.UpdateProfile)
	}
}
