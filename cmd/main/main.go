package main

import (
	"Backend-CMS/internal/app/config"
	"Backend-CMS/internal/app/repository"
	"Backend-CMS/internal/pkg"

	_ "Backend-CMS/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title CMS Admin Service API
// @version 1.0
// @description Content management API with paginated table queries, JWT authentication and role-based access control

// @contact.name API Support
// @contact.url http://localhost:8080

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

// @tag.name Users
// @tag.description User management and authentication
// @tag.name Articles
// @tag.description Blog article management
// @tag.name Topics
// @tag.description Article topic management
// @tag.name Projects
// @tag.description Portfolio project management
// @tag.name Subscribers
// @tag.description Newsletter subscriber management
// @tag.name Upload
// @tag.description Image uploads
func main() {
	router := gin.Default()

	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}
	defer repo.Close()

	application := pkg.NewApp(conf, router, repo)
	application.RunApp()
}
