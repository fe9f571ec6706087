package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/handler"
)

// Setup wires the gin engine: session middleware, per-request actor
// resolution, then the API routes.
func Setup(api *handler.API, cfg config.AppConfig) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inkpress_session", store))
	r.Use(api.LoadActor())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	account := r.Group("/account")
	{
		account.POST("/register", api.Register)
		account.POST("/login", api.Login)
		account.POST("/logout", api.Logout)

		authed := account.Group("")
		authed.Use(handler.RequireAuth())
		{
			authed.GET("/me", api.Me)
			authed.POST("/verify", api.VerifyEmail)
			authed.POST("/profile", api.CreateProfile)
			authed.PUT("/profile", api.UpdateProfile)
		}
	}

	articles := r.Group("/articles")
	{
		articles.GET("", api.ListPublishedArticles)
		articles.GET("/:slug", api.GetArticleBySlug)

		// Write routes need a verified, active account.
		write := r.Group("/articles")
		write.Use(handler.RequireActiveVerified())
		{
			write.POST("", api.CreateArticle)
			write.GET("/mine/list", api.ListMyArticles)
			write.PUT("/id/:id", api.UpdateArticle)
			write.DELETE("/id/:id", api.DeleteArticle)
			write.POST("/id/:id/publish", api.PublishArticle)
			write.POST("/id/:id/archive", api.ArchiveArticle)
			write.POST("/id/:id/vote/up", api.UpvoteArticle)
			write.POST("/id/:id/vote/down", api.DownvoteArticle)
			write.DELETE("/id/:id/vote", api.UnvoteArticle)
			write.POST("/id/:id/comments", api.CreateArticleComment)
		}

		articles.GET("/id/:id/comments", api.ListArticleComments)
	}

	comments := r.Group("/comments")
	{
		comments.GET("/:id/replies", api.ListReplies)

		write := r.Group("/comments")
		write.Use(handler.RequireActiveVerified())
		{
			write.POST("/:id/replies", api.CreateReply)
			write.DELETE("/:id", api.DeleteComment)
			write.POST("/:id/vote/up", api.UpvoteComment)
			write.POST("/:id/vote/down", api.DownvoteComment)
			write.DELETE("/:id/vote", api.UnvoteComment)
		}
	}

	tags := r.Group("/tags")
	{
		tags.GET("", api.ListTags)
		tags.GET("/:slug/articles", api.ListArticlesByTag)

		admin := r.Group("/tags")
		admin.Use(handler.RequireAdmin())
		{
			admin.POST("", api.CreateTag)
			admin.DELETE("/:id", api.DeleteTag)
		}
	}

	r.GET("/profiles/:profileName", api.GetProfile)

	return r
}
