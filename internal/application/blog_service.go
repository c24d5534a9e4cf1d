package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/apperr"
)

// BlogService manages publications, the containers posts are grouped under.
type BlogService struct {
	blogs repository.BlogRepository
	log   *logrus.Logger
}

func NewBlogService(blogs repository.BlogRepository, log *logrus.Logger) *BlogService {
	return &BlogService{blogs: blogs, log: log}
}

func (s *BlogService) List(ctx context.Context) ([]*entity.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list blogs", err)
	}
	return blogs, nil
}

func (s *BlogService) ListMine(ctx context.Context, userID string) ([]*entity.Blog, error) {
	blogs, err := s.blogs.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list blogs", err)
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "blog not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load blog", err)
	}
	return b, nil
}

type BlogInput struct {
	Title       string
	Description string
}

// Create rejects a title that is already in use before inserting, and again
// on the unique constraint in case of a race.
func (s *BlogService) Create(ctx context.Context, userID string, in BlogInput) (*entity.Blog, error) {
	_, err := s.blogs.GetByTitle(ctx, in.Title)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.KindConflict, "a blog with this title already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Wrap(apperr.KindInternal, "check title", err)
	}

	b := &entity.Blog{
		Title:       in.Title,
		Description: in.Description,
		UserID:      userID,
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "a blog with this title already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "create blog", err)
	}
	return b, nil
}

func (s *BlogService) Update(ctx context.Context, id, userID string, in BlogInput) (*entity.Blog, error) {
	b := &entity.Blog{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		UserID:      userID,
	}
	if err := s.blogs.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.New(apperr.KindNotFound, "blog not found or not yours")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.New(apperr.KindConflict, "a blog with this title already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "update blog", err)
	}
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, id, userID string) error {
	if err := s.blogs.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "blog not found or not yours")
		}
		return apperr.Wrap(apperr.KindInternal, "delete blog", err)
	}
	return nil
}
