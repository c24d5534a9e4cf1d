package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/application"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
	"github.com/inkwell-app/inkwell-api/pkg/response"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// UserHandler exposes profile maintenance endpoints.
type UserHandler struct {
	Service *application.UserService
	Logger  *logrus.Logger
	Debug   bool
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, debug bool) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger, Debug: debug}
}

// UpdateProfile PUT /api/v1/user/profile (multipart)
// Accepts display_name, user_name and an optional avatar file.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	in := application.ProfileInput{
		DisplayName: c.PostForm("display_name"),
		UserName:    c.PostForm("user_name"),
	}

	file, err := c.FormFile("avatar")
	if err == nil {
		if file.Size > maxAvatarSize {
			response.Error(c, http.StatusBadRequest, "avatar must be 5MB or smaller", nil)
			return
		}
		f, err := file.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "could not read avatar file", nil)
			return
		}
		defer f.Close()
		in.Avatar = &application.ImageUpload{
			Reader:      f,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
		}
	}

	u, err := h.Service.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), in)
	if err != nil {
		response.WriteErrorDebug(c, err, h.Debug)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated")
}
