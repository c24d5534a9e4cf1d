package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/application"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
	"github.com/inkwell-app/inkwell-api/pkg/response"
	"github.com/inkwell-app/inkwell-api/pkg/validation"
)

const maxFeaturedImageSize = 10 << 20 // 10 MiB

type PostHandler struct {
	Service *application.PostService
	Logger  *logrus.Logger
	Debug   bool
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger, debug bool) *PostHandler {
	return &PostHandler{Service: svc, Logger: logger, Debug: debug}
}

// List GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Service.List(c.Request.Context())
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts")
}

// Get GET /api/v1/posts/:idOrSlug
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, p, "post")
}

// Search GET /api/v1/posts/search?q=...&size=10
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Service.Search(c.Request.Context(), q, size)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// postInput reads the multipart form used by Create and Update. The featured
// image is optional; everything else mirrors the JSON API.
func (h *PostHandler) postInput(c *gin.Context) (application.PostInput, bool) {
	in := application.PostInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		BlogID:  c.PostForm("blog_id"),
	}
	if in.Title == "" || in.Content == "" {
		response.Error(c, http.StatusBadRequest, "validation failed",
			map[string]string{"title": "title and content are required"})
		return in, false
	}

	file, err := c.FormFile("featured_image")
	if err == nil {
		if file.Size > maxFeaturedImageSize {
			response.Error(c, http.StatusBadRequest, "featured image must be 10MB or smaller", nil)
			return in, false
		}
		f, err := file.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "could not read featured image", nil)
			return in, false
		}
		// closed by Gin when the request ends; the upload reads it first
		in.Image = &application.ImageUpload{
			Reader:      f,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
		}
	}
	return in, true
}

// Create POST /api/v1/posts (multipart)
func (h *PostHandler) Create(c *gin.Context) {
	in, ok := h.postInput(c)
	if !ok {
		return
	}
	p, err := h.Service.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), in)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created")
}

// Update PUT /api/v1/posts/:idOrSlug (multipart)
func (h *PostHandler) Update(c *gin.Context) {
	in, ok := h.postInput(c)
	if !ok {
		return
	}
	p, err := h.Service.Update(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.CtxUserID), in)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated")
}

// Delete DELETE /api/v1/posts/:idOrSlug
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.CtxUserID)); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "post deleted")
}

// HasLiked GET /api/v1/posts/:idOrSlug/like
func (h *PostHandler) HasLiked(c *gin.Context) {
	liked, err := h.Service.HasLiked(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hasLiked": liked}, "like status")
}

// ToggleLike POST /api/v1/posts/:idOrSlug/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	res, err := h.Service.ToggleLike(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	msg := "post unliked"
	if res.Liked {
		msg = "post liked"
	}
	response.Success(c, http.StatusOK, res, msg)
}

// ListComments GET /api/v1/posts/:idOrSlug/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.Service.ListComments(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments")
}

// GetComment GET /api/v1/posts/:idOrSlug/comments/:commentId
func (h *PostHandler) GetComment(c *gin.Context) {
	cm, err := h.Service.GetComment(c.Request.Context(), c.Param("idOrSlug"), c.Param("commentId"))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, cm, "comment")
}

type commentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// AddComment POST /api/v1/posts/:idOrSlug/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	cm, err := h.Service.AddComment(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.CtxUserID), req.Content)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusCreated, cm, "comment added")
}

// DeleteComment DELETE /api/v1/posts/:idOrSlug/comments/:commentId
func (h *PostHandler) DeleteComment(c *gin.Context) {
	if err := h.Service.DeleteComment(c.Request.Context(), c.Param("commentId"), c.GetString(middleware.CtxUserID)); err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "comment deleted")
}

// ToggleCommentLike POST /api/v1/posts/:idOrSlug/comments/:commentId/like
func (h *PostHandler) ToggleCommentLike(c *gin.Context) {
	res, err := h.Service.ToggleCommentLike(c.Request.Context(),
		c.Param("idOrSlug"), c.Param("commentId"), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	msg := "comment unliked"
	if res.Liked {
		msg = "comment liked"
	}
	response.Success(c, http.StatusOK, res, msg)
}
