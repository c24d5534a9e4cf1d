package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/apperr"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

// UserService covers profile maintenance for an authenticated user.
type UserService struct {
	users  repository.UserRepository
	gcs    *storage.Client
	bucket string
	log    *logrus.Logger
}

func NewUserService(users repository.UserRepository, gcs *storage.Client, bucket string, log *logrus.Logger) *UserService {
	return &UserService{users: users, gcs: gcs, bucket: bucket, log: log}
}

type ProfileInput struct {
	DisplayName string
	UserName    string
	Avatar      *ImageUpload
}

// UpdateProfile changes display name, username and optionally the avatar.
// A new avatar replaces the stored object; the old one is removed
// best-effort.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load user", err)
	}

	if in.DisplayName != "" {
		u.DisplayName = in.DisplayName
	}
	if in.UserName != "" {
		u.UserName = in.UserName
	}

	if in.Avatar != nil {
		if s.gcs == nil {
			return nil, apperr.New(apperr.KindUpstream, "image storage is not available")
		}
		object := fmt.Sprintf("avatars/%s%s", uuid.New().String(), strings.ToLower(path.Ext(in.Avatar.Filename)))
		url, err := helpers.UploadImage(ctx, s.gcs, s.bucket, object, in.Avatar.ContentType, in.Avatar.Reader)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindUpstream, "upload avatar", err)
		}
		if old := objectFromURL(u.AvatarURL, s.bucket); old != "" {
			if err := helpers.DeleteObject(ctx, s.gcs, s.bucket, old); err != nil {
				s.log.WithError(err).WithField("object", old).Warn("delete old avatar")
			}
		}
		u.AvatarURL = url
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "this username is already taken")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "update user", err)
	}
	return u, nil
}

// objectFromURL recovers the object path from a public GCS URL for this
// bucket; empty for anything else (external avatars stay untouched).
func objectFromURL(url, bucket string) string {
	prefix := "https://storage.googleapis.com/" + bucket + "/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	return ""
}
