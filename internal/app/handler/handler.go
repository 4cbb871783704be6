package handler

import (
	"Backend-CMS/internal/app/middleware"
	"Backend-CMS/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// RegisterHandlers wires every route group onto the router.
func RegisterHandlers(router *gin.Engine, repo *repository.Repository) {
	apiRouter := router.Group("/api")

	articleHandler := NewArticleHandler(repo)
	topicHandler := NewTopicHandler(repo)
	projectHandler := NewProjectHandler(repo)
	subscriberHandler := NewSubscriberHandler(repo)
	uploadHandler := NewUploadHandler(repo)
	userHandler := NewUserHandler(repo)

	// Public routes
	public := apiRouter.Group("")
	{
		public.POST("/users/login", userHandler.Login)
		public.POST("/users/register", userHandler.Register)
		public.POST("/users/refresh", userHandler.RefreshToken)

		public.GET("/articles", articleHandler.GetArticles)
		public.GET("/articles/:slug", articleHandler.GetArticle)
		public.GET("/topics", topicHandler.GetTopics)
		public.GET("/topics/:slug", topicHandler.GetTopic)
		public.GET("/projects", projectHandler.GetProjects)
		public.GET("/projects/:slug", projectHandler.GetProject)

		public.POST("/subscribe", subscriberHandler.Subscribe)
		public.POST("/unsubscribe", subscriberHandler.Unsubscribe)
	}

	// Protected routes - any authenticated account
	protected := apiRouter.Group("")
	protected.Use(middleware.AuthMiddleware(repo))
	{
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.POST("/users/logout", userHandler.Logout)
	}

	// Moderator only routes - content and subscriber management
	moderator := apiRouter.Group("")
	moderator.Use(middleware.AuthMiddleware(repo), middleware.ModeratorOnly())
	{
		moderator.POST("/articles", articleHandler.CreateArticle)
		moderator.PUT("/articles/:id", articleHandler.UpdateArticle)
		moderator.DELETE("/articles/:id", articleHandler.DeleteArticle)
		moderator.PUT("/articles/:id/publish", articleHandler.SetArticlePublished)
		moderator.PUT("/articles/:id/feature", articleHandler.SetArticleFeatured)
		moderator.POST("/articles/:id/duplicate", articleHandler.DuplicateArticle)

		moderator.POST("/topics", topicHandler.CreateTopic)
		moderator.PUT("/topics/:id", topicHandler.UpdateTopic)
		moderator.DELETE("/topics/:id", topicHandler.DeleteTopic)

		moderator.POST("/projects", projectHandler.CreateProject)
		moderator.PUT("/projects/:id", projectHandler.UpdateProject)
		moderator.DELETE("/projects/:id", projectHandler.DeleteProject)
		moderator.PUT("/projects/:id/publish", projectHandler.SetProjectPublished)
		moderator.PUT("/projects/:id/feature", projectHandler.SetProjectFeatured)
		moderator.POST("/projects/:id/duplicate", projectHandler.DuplicateProject)

		moderator.GET("/subscribers", subscriberHandler.GetSubscribers)
		moderator.PUT("/subscribers/:id/verify", subscriberHandler.SetSubscriberVerified)
		moderator.DELETE("/subscribers/:id", subscriberHandler.DeleteSubscriber)

		moderator.POST("/upload", uploadHandler.UploadImage)
		moderator.DELETE("/upload/:publicId", uploadHandler.DeleteImage)
	}
}
