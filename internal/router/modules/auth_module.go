package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell-api/internal/container"
	handlers "github.com/inkwell-app/inkwell-api/internal/interface/http"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
)

// AuthModule registers the /user route group: account lifecycle, sessions
// and password resets. Credential endpoints get tight per-IP rate limits.
type AuthModule struct {
	Auth *handlers.AuthHandler
	User *handlers.UserHandler
	Mw   gin.HandlerFunc // access token guard
}

func NewAuthModule(auth *handlers.AuthHandler, user *handlers.UserHandler, authMw gin.HandlerFunc) *AuthModule {
	return &AuthModule{Auth: auth, User: user, Mw: authMw}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	credLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	resetLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	g := rg.Group("/user")
	g.POST("/register", credLimiter, m.Auth.Register)
	g.POST("/login", credLimiter, m.Auth.Login)
	g.POST("/social", credLimiter, m.Auth.SocialLogin)
	g.POST("/refresh", credLimiter, m.Auth.Refresh)
	g.POST("/password/forgot", resetLimiter, m.Auth.ForgotPassword)
	g.POST("/password/reset/:token", resetLimiter, m.Auth.ResetPassword)

	authed := g.Group("/")
	authed.Use(m.Mw)
	authed.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		authed.GET("/currentUser", m.Auth.CurrentUser)
		authed.POST("/logout", m.Auth.Logout)
		authed.PUT("/profile", m.User.UpdateProfile)
	}
}
