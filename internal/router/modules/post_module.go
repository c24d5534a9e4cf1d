package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell-api/internal/container"
	handlers "github.com/inkwell-app/inkwell-api/internal/interface/http"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
)

// PostModule registers the /posts route group: articles, search, likes and
// comments. Reads are public, everything else needs a session.
type PostModule struct {
	Handler *handlers.PostHandler
	Mw      gin.HandlerFunc
}

func NewPostModule(h *handlers.PostHandler, authMw gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Mw: authMw}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	writeLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil)
	searchLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	g := rg.Group("/posts")
	g.GET("", m.Handler.List)
	g.GET("/search", searchLimiter, m.Handler.Search)
	g.GET("/:idOrSlug", m.Handler.Get)
	g.GET("/:idOrSlug/comments", m.Handler.ListComments)
	g.GET("/:idOrSlug/comments/:commentId", m.Handler.GetComment)
	g.GET("/:idOrSlug/like", m.Mw, m.Handler.HasLiked)

	g.POST("", m.Mw, writeLimiter, m.Handler.Create)
	g.PUT("/:idOrSlug", m.Mw, writeLimiter, m.Handler.Update)
	g.DELETE("/:idOrSlug", m.Mw, writeLimiter, m.Handler.Delete)

	g.POST("/:idOrSlug/like", m.Mw, writeLimiter, m.Handler.ToggleLike)
	g.POST("/:idOrSlug/comments", m.Mw, writeLimiter, m.Handler.AddComment)
	g.DELETE("/:idOrSlug/comments/:commentId", m.Mw, writeLimiter, m.Handler.DeleteComment)
	g.POST("/:idOrSlug/comments/:commentId/like", m.Mw, writeLimiter, m.Handler.ToggleCommentLike)
}
