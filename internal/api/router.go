package api

import (
	"net/http"

	"workhub/internal/api/handler"
	"workhub/internal/api/middleware"
	"workhub/internal/api/service"
	"workhub/internal/config"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Work     *handler.WorkHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// SetupRouter wires every route under /api/v1. Reads are open to
// anonymous callers, catalog writes need the admin role, contribution
// writes need any authenticated user.
func SetupRouter(cfg *config.Config, h Handlers, authService service.AuthService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst))
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/token", h.Auth.Token)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(authService))
	{
		users.GET("/me", h.User.Me)
		users.PATCH("/me", h.User.UpdateMe)

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", h.User.List)
			admin.POST("", h.User.Create)
			admin.GET("/:username", h.User.Get)
			admin.PATCH("/:username", h.User.Update)
			admin.DELETE("/:username", h.User.Delete)
		}
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)

		write := categories.Group("")
		write.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
		{
			write.POST("", h.Category.Create)
			write.DELETE("/:slug", h.Category.Delete)
		}
	}

	genres := v1.Group("/genres")
	{
		genres.GET("", h.Genre.List)

		write := genres.Group("")
		write.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
		{
			write.POST("", h.Genre.Create)
			write.DELETE("/:slug", h.Genre.Delete)
		}
	}

	works := v1.Group("/works")
	{
		works.GET("", h.Work.List)
		works.GET("/:work_id", h.Work.Get)

		adminWrite := works.Group("")
		adminWrite.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
		{
			adminWrite.POST("", h.Work.Create)
			adminWrite.PATCH("/:work_id", h.Work.Update)
			adminWrite.DELETE("/:work_id", h.Work.Delete)
		}

		reviews := works.Group("/:work_id/reviews")
		{
			reviews.GET("", h.Review.List)
			reviews.GET("/:review_id", h.Review.Get)

			write := reviews.Group("")
			write.Use(middleware.AuthMiddleware(authService), middleware.RequireAuthenticated())
			{
				write.POST("", h.Review.Create)
				write.PATCH("/:review_id", h.Review.Update)
				write.DELETE("/:review_id", h.Review.Delete)
			}

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", h.Comment.List)
				comments.GET("/:comment_id", h.Comment.Get)

				cwrite := comments.Group("")
				cwrite.Use(middleware.AuthMiddleware(authService), middleware.RequireAuthenticated())
				{
					cwrite.POST("", h.Comment.Create)
					cwrite.PATCH("/:comment_id", h.Comment.Update)
					cwrite.DELETE("/:comment_id", h.Comment.Delete)
				}
			}
		}
	}

	return r
}
