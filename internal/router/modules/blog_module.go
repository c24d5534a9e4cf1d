package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell-api/internal/container"
	handlers "github.com/inkwell-app/inkwell-api/internal/interface/http"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
)

// BlogModule registers the /blogs route group. Reads are public, writes
// require a session.
type BlogModule struct {
	Handler *handlers.BlogHandler
	Mw      gin.HandlerFunc
}

func NewBlogModule(h *handlers.BlogHandler, authMw gin.HandlerFunc) *BlogModule {
	return &BlogModule{Handler: h, Mw: authMw}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil)

	g := rg.Group("/blogs")
	g.GET("", m.Handler.List)
	g.GET("/me", m.Mw, m.Handler.ListMine)
	g.GET("/:id", m.Handler.Get)
	g.POST("", m.Mw, rl, m.Handler.Create)
	g.PUT("/:id", m.Mw, rl, m.Handler.Update)
	g.DELETE("/:id", m.Mw, rl, m.Handler.Delete)
}
