package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) Update(context.Context, *entity.User) error               { return nil }
func (s *stubUserRepo) UpdateRefreshToken(context.Context, string, string) error { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, string, string) error     { return nil }

func newAuthRouter(jwtMgr *helpers.JWTManager, repo repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwtMgr, repo), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID))
	})
	return r
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	jwtMgr := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	repo := &stubUserRepo{user: &entity.User{ID: "user-1"}}
	r := newAuthRouter(jwtMgr, repo)

	token, _, err := jwtMgr.GenerateAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	jwtMgr := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	repo := &stubUserRepo{user: &entity.User{ID: "user-1"}}
	r := newAuthRouter(jwtMgr, repo)

	token, _, err := jwtMgr.GenerateAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	jwtMgr := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	r := newAuthRouter(jwtMgr, &stubUserRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredTokenMessage(t *testing.T) {
	jwtMgr := helpers.NewJWTManager("a-secret", "r-secret", -time.Minute, time.Hour)
	repo := &stubUserRepo{user: &entity.User{ID: "user-1"}}
	r := newAuthRouter(jwtMgr, repo)

	token, _, err := jwtMgr.GenerateAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	jwtMgr := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	r := newAuthRouter(jwtMgr, &stubUserRepo{}) // no user rows at all

	token, _, err := jwtMgr.GenerateAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
