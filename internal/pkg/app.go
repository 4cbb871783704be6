package pkg

import (
	"Backend-CMS/internal/app/config"
	"Backend-CMS/internal/app/handler"
	"Backend-CMS/internal/app/repository"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App ties the router, configuration and repository together.
type App struct {
	config *config.Config
	router *gin.Engine
	repo   *repository.Repository
}

func NewApp(cfg *config.Config, router *gin.Engine, repo *repository.Repository) *App {
	return &App{
		config: cfg,
		router: router,
		repo:   repo,
	}
}

// RunApp registers every route and blocks serving HTTP.
func (a *App) RunApp() {
	logrus.Info("Server starting up")

	handler.RegisterHandlers(a.router, a.repo)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := fmt.Sprintf("%s:%d", a.config.ServiceHost, a.config.ServicePort)
	if err := a.router.Run(addr); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}

	logrus.Info("Server shut down")
}
