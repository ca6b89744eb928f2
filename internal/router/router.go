package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/handler/articles"
	"portfolio-api/internal/handler/auth"
	"portfolio-api/internal/handler/projects"
	"portfolio-api/internal/handler/users"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/worker"
)

// Setup registers every route and its middleware.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, cacheTTL time.Duration) {
	requireAuth := middleware.RequireAuth(db)
	requireAdmin := middleware.RequireAdmin(db)

	api := e.Group("/api")

	api.GET("/ping", handler.PingHandler(db, rdb))

	api.POST("/login", auth.LoginHandler(db))
	api.GET("/me", auth.MeHandler(db), requireAuth)
	api.POST("/reset-password", auth.ResetPasswordHandler(db), requireAuth)

	api.POST("/articles", articles.CreateArticleHandler(db), requireAuth)
	api.GET("/articles", articles.ListArticlesHandler(db))
	api.GET("/articles/:slug", articles.GetArticleHandler(db, rdb, cacheTTL))
	api.PUT("/articles/:id", articles.UpdateArticleHandler(db, rdb, wp), requireAuth)
	api.DELETE("/articles/:id", articles.DeleteArticleHandler(db, rdb, wp), requireAuth)

	api.POST("/projects", projects.CreateProjectHandler(db), requireAuth)
	api.GET("/projects", projects.ListProjectsHandler(db))
	api.GET("/projects/:slug", projects.GetProjectHandler(db, rdb, cacheTTL))
	api.PUT("/projects/:id", projects.UpdateProjectHandler(db, rdb, wp), requireAuth)
	api.DELETE("/projects/:id", projects.DeleteProjectHandler(db, rdb, wp), requireAuth)

	apiUsers := api.Group("/users", requireAdmin)
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))
}
