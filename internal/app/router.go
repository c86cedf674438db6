package app

import (
	"jirepedia_backend/docs"
	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/middleware"
	"jirepedia_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/terms", c.term.List)
		public.GET("/terms/trending", c.term.Trending)
		public.GET("/terms/:id", c.term.Detail)
		public.GET("/leaderboard", c.user.Leaderboard)
		public.GET("/badges", c.badge.Catalog)
		public.GET("/users/:id", c.user.GetUserProfile)
		public.GET("/entries/:id", c.entry.Get)
		public.GET("/entries/:id/comments", c.entry.ListComments)

		// 登录用户可看完成状态，游客也能看今日のお題
		public.GET("/daily-challenge", middleware.TryAuthMiddleware(cfg), c.challenge.GetToday)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)
		authGroup.GET("/users/me/attempts", c.user.ListAttempts)

		authGroup.POST("/terms", c.term.Submit)

		authGroup.POST("/judge", c.judge.Submit)
		authGroup.GET("/attempts/:id", c.judge.GetAttempt)

		authGroup.POST("/entries", c.entry.Create)
		authGroup.GET("/entries/mine", c.entry.ListMine)
		authGroup.POST("/entries/:id/like", c.entry.ToggleLike)
		authGroup.POST("/entries/:id/comments", c.entry.CreateComment)
		authGroup.POST("/entries/:id/improvements", c.entry.ProposeImprovement)
		authGroup.POST("/improvements/:id/review", c.entry.ReviewImprovement)

		authGroup.GET("/badges/mine", c.badge.ListMine)

		authGroup.GET("/notifications", c.notify.List)
		authGroup.POST("/notifications/:id/read", c.notify.MarkRead)
		authGroup.POST("/notifications/read-all", c.notify.MarkAllRead)
	}
}
