package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
)

type fakeBlogRepo struct {
	mu    sync.Mutex
	seq   int
	blogs map[string]*entity.Blog
}

func newFakeBlogRepo() *fakeBlogRepo { return &fakeBlogRepo{blogs: map[string]*entity.Blog{}} }

func (f *fakeBlogRepo) List(context.Context) ([]*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBlogRepo) ListByUser(_ context.Context, userID string) ([]*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Blog, 0)
	for _, b := range f.blogs {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogRepo) GetByTitle(_ context.Context, title string) (*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blogs {
		if b.Title == title {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBlogRepo) Create(_ context.Context, b *entity.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.blogs {
		if ex.Title == b.Title {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	b.ID = fmt.Sprintf("blog-%d", f.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.blogs[b.ID] = &cp
	return nil
}

func (f *fakeBlogRepo) Update(_ context.Context, b *entity.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.blogs[b.ID]
	if !ok || ex.UserID != b.UserID {
		return repository.ErrNotFound
	}
	ex.Title = b.Title
	ex.Description = b.Description
	ex.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.blogs[id]
	if !ok || ex.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.blogs, id)
	return nil
}

type fakeLike struct {
	userID    string
	postID    string
	commentID string
	typ       entity.LikeType
}

type fakePostRepo struct {
	mu       sync.Mutex
	seq      int
	posts    map[string]*entity.Post
	comments map[string]*entity.Comment
	likes    []fakeLike
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:    map[string]*entity.Post{},
		comments: map[string]*entity.Comment{},
	}
}

func (f *fakePostRepo) List(context.Context) ([]*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Post, 0, len(f.posts))
	for _, p := range f.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePostRepo) GetByIDOrSlug(_ context.Context, idOrSlug string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == idOrSlug || p.Slug == idOrSlug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.posts {
		if ex.Slug == p.Slug {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	p.ID = fmt.Sprintf("post-%d", f.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, p *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.posts[p.ID]
	if !ok || ex.UserID != p.UserID {
		return repository.ErrNotFound
	}
	ex.Title = p.Title
	ex.Slug = p.Slug
	ex.Content = p.Content
	ex.FeaturedImage = p.FeaturedImage
	ex.BlogID = p.BlogID
	ex.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.posts[id]
	if !ok || ex.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) HasLiked(_ context.Context, postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes {
		if l.typ == entity.LikePost && l.postID == postID && l.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) ToggleLike(_ context.Context, postID, userID string) (repository.LikeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	liked := true
	for i, l := range f.likes {
		if l.typ == entity.LikePost && l.postID == postID && l.userID == userID {
			f.likes = append(f.likes[:i], f.likes[i+1:]...)
			liked = false
			break
		}
	}
	if liked {
		f.likes = append(f.likes, fakeLike{userID: userID, postID: postID, typ: entity.LikePost})
	}
	count := 0
	for _, l := range f.likes {
		if l.typ == entity.LikePost && l.postID == postID {
			count++
		}
	}
	return repository.LikeResult{Liked: liked, Count: count}, nil
}

func (f *fakePostRepo) ListComments(_ context.Context, postID string) ([]*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Comment, 0)
	for _, c := range f.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetComment(_ context.Context, postID, commentID string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakePostRepo) FindComment(_ context.Context, postID, userID, content string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comments {
		if c.PostID == postID && c.UserID == userID && c.Content == content {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) CreateComment(_ context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c.ID = fmt.Sprintf("comment-%d", f.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakePostRepo) DeleteComment(_ context.Context, commentID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[commentID]
	if !ok || c.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.comments, commentID)
	return nil
}

func (f *fakePostRepo) ToggleCommentLike(_ context.Context, commentID, userID string) (repository.LikeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	liked := true
	for i, l := range f.likes {
		if l.typ == entity.LikeComment && l.commentID == commentID && l.userID == userID {
			f.likes = append(f.likes[:i], f.likes[i+1:]...)
			liked = false
			break
		}
	}
	if liked {
		f.likes = append(f.likes, fakeLike{userID: userID, commentID: commentID, typ: entity.LikeComment})
	}
	count := 0
	for _, l := range f.likes {
		if l.typ == entity.LikeComment && l.commentID == commentID {
			count++
		}
	}
	return repository.LikeResult{Liked: liked, Count: count}, nil
}
