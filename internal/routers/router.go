// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/internal/middleware"
	"github.com/haierkeys/note-link-service/internal/routers/api_router"
	"github.com/haierkeys/note-link-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/notes",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
)

// NewRouter 创建主路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.Metrics())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		linkHandler := api_router.NewLinkHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		api.POST("/notes", noteHandler.Create)
		api.GET("/notes", noteHandler.List)
		api.GET("/notes/:id", noteHandler.Get)
		api.PUT("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.Delete)

		api.GET("/notes/:id/links", linkHandler.GetWikiLinks)
		api.GET("/notes/:id/backlinks", linkHandler.GetBacklinks)
		api.POST("/notes/:id/links/create-bidirectional", linkHandler.CreateBidirectional)
		api.GET("/notes/:id/links/suggestions", linkHandler.Suggestions)
		api.POST("/notes/:id/links/validate-all", linkHandler.ValidateAll)
		api.POST("/notes/:id/links/auto-link", linkHandler.AutoLink)

		// 事件推送通道
		api.GET("/ws", appContainer.WSHub.Serve)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
