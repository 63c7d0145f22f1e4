package main

import (
	"studyshare/internal/pkg/config"
	"studyshare/internal/pkg/middleware"
	"studyshare/internal/pkg/registry"
	"studyshare/internal/pkg/uploader"
	"studyshare/internal/pkg/worker"
	"studyshare/pkg/cache"
	"studyshare/pkg/database"
	"studyshare/pkg/logger"
	"studyshare/pkg/metrics"
	"studyshare/pkg/response"

	interactionRepo "studyshare/internal/domain/interaction/repository"

	// 模块通过 init() 自注册
	_ "studyshare/internal/domain/common"
	_ "studyshare/internal/domain/document"
	_ "studyshare/internal/domain/interaction"
	_ "studyshare/internal/domain/solution"
	_ "studyshare/internal/domain/taxonomy"
	_ "studyshare/internal/domain/tutorial"
	_ "studyshare/internal/domain/university"
	_ "studyshare/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. 基础设施
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Env)
	defer logger.Sync()
	metrics.InitMetrics()

	db := database.InitDatabase()
	redisClient := database.InitRedis()
	cacheService := cache.NewRedisCache(redisClient)

	// OSS 不可用时只告警，上传接口会返回错误
	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("OSS uploader not available", zap.Error(err))
	}

	// 2. HTTP 引擎
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, "ok")
	})

	// 3. 互动事件异步写入池
	events := worker.NewEventPool(
		interactionRepo.NewInteractionRepository(db),
		config.GlobalConfig.Events.Workers,
		config.GlobalConfig.Events.BufferSize,
	)
	events.Start()

	// 4. 模块初始化（user 模块先行，向后续模块提供 Identity）
	ctx := &registry.ModuleContext{
		DB:     db,
		Redis:  redisClient,
		Cache:  cacheService,
		Router: r,
		Events: events,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	addr := ":" + config.GlobalConfig.Server.Port
	logger.Log.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
