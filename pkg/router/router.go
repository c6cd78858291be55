package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/handler"
	"github.com/keykomi/webblog/pkg/middleware"
	"github.com/keykomi/webblog/pkg/store"
	"github.com/keykomi/webblog/pkg/upload"
)

// New 组装路由
func New(db *gorm.DB, issuer *auth.TokenIssuer, uploadSvc *upload.Service) *gin.Engine {
	router := gin.New()
	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Cors())
	router.Use(gin.Recovery())

	// 404
	router.NoRoute(handler.NotFound)
	// robots.txt
	router.GET("robots.txt", handler.GetRobotsTxt)

	articleStore := store.NewArticleStore(db)
	articleHandler := handler.NewArticleHandler(articleStore)
	authHandler := handler.NewAuthHandler(store.NewUserStore(db), issuer)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	rssHandler := handler.NewRSSHandler(articleStore)

	// RSS
	router.GET("rss", rssHandler.GetRSS)

	// api 路由
	apiRg := router.Group("api")
	{
		// 健康检查
		apiRg.GET("health", handler.Healthz)
		// 登录
		apiRg.POST("auth/login", authHandler.Login)
	}

	// 文章公开接口
	{
		apiRg.GET("articles", articleHandler.List)
		apiRg.GET("articles/all", articleHandler.ListAll)
		apiRg.GET("articles/search", articleHandler.Search)
		apiRg.GET("articles/:id", articleHandler.Retrieve)
		// 阅读数上报（触发时机由客户端阅读门限控制）
		apiRg.POST("articles/:id/increment-read", articleHandler.IncrementRead)
	}

	// 写操作接口，需要 Bearer Token
	authedRg := apiRg.Group("", middleware.AuthRequired(issuer))
	{
		authedRg.POST("articles", articleHandler.Create)
		authedRg.PUT("articles/:id", articleHandler.Update)
		authedRg.PATCH("articles/:id", articleHandler.Patch)
		authedRg.DELETE("articles/:id", articleHandler.Delete)
		authedRg.POST("uploads/image", uploadHandler.UploadImage)
	}

	return router
}

// Run 启动 HTTP 服务
func Run(router *gin.Engine) {
	if err := router.Run(":" + envs.ServerPort); err != nil {
		panic(fmt.Sprintf("failed to start server: %s", err.Error()))
	}
}
