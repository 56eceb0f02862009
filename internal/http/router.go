package api

import (
	stdhttp "net/http"

	intconfig "admindash/internal/config"
	h "admindash/internal/http/handlers"
	"admindash/internal/http/middleware"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, deps h.API) *gin.Engine {
	r := gin.New()

	metrics := middleware.NewMetrics("admindash", deps.Cache.Stats)
	r.Use(middleware.RequestID(), middleware.Logger(), metrics.Handler(), middleware.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "not_found", "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})
	r.GET("/metrics", gin.WrapH(metrics.Expose()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", deps.DBCheck)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", deps.Login)
		auth.POST("/logout", deps.Logout)

		session := api.Group("", middleware.RequireSession(deps.Auth))
		session.GET("/auth/me", h.Me)

		blogs := session.Group("/blogs")
		blogs.GET("/list", deps.ListBlogs)
		blogs.GET("/:id", deps.GetBlog)
		blogs.POST("/:id/delete", deps.DeleteBlog)
		blogs.POST("/:id/restore", deps.RestoreBlog)

		session.GET("/projects", deps.ListProjects)
		session.GET("/projects/:id", deps.GetProject)
		session.GET("/images", deps.ListImages)

		session.GET("/users", deps.ListUsers)
		session.GET("/users/:id", deps.GetUser)
		session.GET("/submissions", deps.ListSubmissions)

		analytics := session.Group("/analytics")
		analytics.GET("/overview", deps.Overview)
		analytics.GET("/usage", deps.Usage)
		analytics.GET("/usage/report.pdf", deps.UsageReportPDF)

		session.POST("/ai-playground/:provider", deps.AIPlayground)

		admin := session.Group("", middleware.RequireRoles(middleware.AdminRoles...))
		admin.GET("/logs", deps.ListLogs)
		admin.GET("/logs/summary", deps.LogSummary)
		admin.GET("/crawl/tasks", deps.ListCrawlTasks)
		admin.GET("/crawl/tasks/:id", deps.GetCrawlTask)
		admin.POST("/crawl/tasks", deps.CreateCrawlTask)
		admin.GET("/cache/stats", deps.CacheStats)
		admin.DELETE("/cache", deps.ClearCache)
	}

	h.SetRouter(r)
	return r
}
