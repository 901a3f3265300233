package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newsdesk/config"
	"newsdesk/controllers"
	"newsdesk/middlewares"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:8080"}
	if config.AppConfig != nil && len(config.AppConfig.Client.Origins) > 0 {
		allowedOrigins = config.AppConfig.Client.Origins
	}
	if raw := os.Getenv("CLIENT_ORIGINS"); raw != "" {
		split := strings.Split(raw, ",")
		allowedOrigins = allowedOrigins[:0]
		for _, v := range split {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
		if len(allowedOrigins) == 0 {
			allowedOrigins = []string{"*"}
		}
	}

	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	// Public health endpoint for liveness/readiness checks
	r.GET("/api/health", controllers.Health)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/profile", middlewares.AuthRequired(), controllers.GetProfile)
		auth.PUT("/profile", middlewares.AuthRequired(), controllers.UpdateProfile)
	}

	api := r.Group("/api")
	{
		api.GET("/news", controllers.GetNews)
		api.GET("/news/search", controllers.SearchNews)
		api.GET("/news/:id", controllers.GetNewsByID)

		api.GET("/countries", controllers.GetCountries)
		api.GET("/categories", controllers.GetCategories)
		api.GET("/stats/countries", controllers.GetCountryStats)

		api.GET("/article/:id/comments", controllers.GetArticleComments)
	}

	bookmark := r.Group("/api/bookmark")
	bookmark.Use(middlewares.AuthRequired())
	{
		bookmark.GET("", controllers.GetBookmarks)
		bookmark.POST("", controllers.AddBookmark)
		bookmark.GET("/:articleId", controllers.CheckBookmark)
		bookmark.DELETE("/:articleId", controllers.RemoveBookmark)
	}

	article := r.Group("/api/article")
	article.Use(middlewares.AuthRequired())
	{
		article.POST("/:id/comments", controllers.AddComment)
		article.DELETE("/comments/:id", controllers.DeleteComment)
	}

	admin := r.Group("/api/admin")
	admin.Use(middlewares.AuthRequired(), middlewares.AdminRequired())
	{
		admin.GET("/users", controllers.GetUsers)
		admin.PUT("/users/:id", controllers.ToggleAdmin)
		admin.DELETE("/users/:id", controllers.DeleteUser)
		admin.POST("/articles", controllers.CreateArticle)
		admin.DELETE("/articles/:id", controllers.DeleteArticle)
	}

	return r
}
