package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/application"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
	"github.com/inkwell-app/inkwell-api/pkg/response"
	"github.com/inkwell-app/inkwell-api/pkg/validation"
)

// AuthHandler exposes the credential and session endpoints. Tokens travel as
// HttpOnly cookies; the body mirrors the user so SPA clients can skip a
// follow-up fetch.
type AuthHandler struct {
	Service *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Debug   bool
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger, debug bool) *AuthHandler {
	return &AuthHandler{Service: svc, Cookies: cookies, Logger: logger, Debug: debug}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserName    string `json:"user_name" binding:"required,min=3,max=30"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=60"`
	Password    string `json:"password" binding:"required,pwd"`
}

// Register POST /api/v1/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Service.Register(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		UserName:    req.UserName,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusCreated, u, "account created, please login")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/v1/user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessExpiresAt, pair.RefreshToken, pair.RefreshExpiresAt)
	response.Success(c, http.StatusOK, u, "login successful")
}

type socialLoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Provider    string `json:"provider" binding:"required,oneof=google github facebook"`
	SocialID    string `json:"social_id" binding:"required"`
	UserName    string `json:"user_name" binding:"required,min=3,max=30"`
	DisplayName string `json:"display_name" binding:"required"`
	AvatarURL   string `json:"avatar" binding:"omitempty,url"`
}

// SocialLogin POST /api/v1/user/social
func (h *AuthHandler) SocialLogin(c *gin.Context) {
	var req socialLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Service.SocialLogin(c.Request.Context(), application.SocialLoginInput{
		Email:       req.Email,
		Provider:    req.Provider,
		SocialID:    req.SocialID,
		UserName:    req.UserName,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessExpiresAt, pair.RefreshToken, pair.RefreshExpiresAt)
	response.Success(c, http.StatusOK, u, "login successful")
}

// CurrentUser GET /api/v1/user/currentUser
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	u, err := h.Service.CurrentUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, u, "current user")
}

// Logout POST /api/v1/user/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh POST /api/v1/user/refresh
// The refresh token comes from its cookie or, for non-browser clients, the
// request body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshTokenCookie)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "refresh token required", nil)
		return
	}

	u, pair, err := h.Service.Refresh(c.Request.Context(), token)
	if err != nil {
		h.Cookies.Clear(c)
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessExpiresAt, pair.RefreshToken, pair.RefreshExpiresAt)
	response.Success(c, http.StatusOK, u, "session refreshed")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /api/v1/user/password/forgot
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset email sent")
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

// ResetPassword POST /api/v1/user/password/reset/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated, please login")
}
