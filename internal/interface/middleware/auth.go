package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
	"github.com/inkwell-app/inkwell-api/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxUser   = "currentUser"
)

// Auth guards a route group with the access token. The token is read from the
// accessToken cookie or, failing that, an Authorization Bearer header. Expired
// tokens get a distinct message so clients know to hit the refresh endpoint
// instead of forcing a re-login. The user is re-fetched on every request so a
// deleted account is locked out the moment its row is gone, not when its
// token expires.
func Auth(jwtMgr *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "authentication required, please login", nil)
			return
		}

		claims, err := jwtMgr.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, "access token expired, please refresh", nil)
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortError(c, http.StatusUnauthorized, "account no longer exists", nil)
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUser, user)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(helpers.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
