package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/application"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
	"github.com/inkwell-app/inkwell-api/pkg/response"
	"github.com/inkwell-app/inkwell-api/pkg/validation"
)

type BlogHandler struct {
	Service *application.BlogService
	Logger  *logrus.Logger
	Debug   bool
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger, debug bool) *BlogHandler {
	return &BlogHandler{Service: svc, Logger: logger, Debug: debug}
}

type blogRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=120"`
	Description string `json:"description" binding:"max=500"`
}

// List GET /api/v1/blogs
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.Service.List(c.Request.Context())
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, blogs, "blogs")
}

// ListMine GET /api/v1/blogs/me
func (h *BlogHandler) ListMine(c *gin.Context) {
	blogs, err := h.Service.ListMine(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, blogs, "your blogs")
}

// Get GET /api/v1/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, b, "blog")
}

// Create POST /api/v1/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	b, err := h.Service.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), application.BlogInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusCreated, b, "blog created")
}

// Update PUT /api/v1/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), application.BlogInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, b, "blog updated")
}

// Delete DELETE /api/v1/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "blog deleted")
}
