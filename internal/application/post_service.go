package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/apperr"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

// PostService manages articles, their comments and likes. Posts are mirrored
// into an Elasticsearch index for full-text search; the database stays the
// source of truth and index writes are best-effort.
type PostService struct {
	posts repository.PostRepository
	blogs repository.BlogRepository

	gcs    *storage.Client
	bucket string

	es      *elasticsearch.Client
	esIndex string

	log *logrus.Logger
}

func NewPostService(
	posts repository.PostRepository,
	blogs repository.BlogRepository,
	gcs *storage.Client,
	bucket string,
	es *elasticsearch.Client,
	esIndex string,
	log *logrus.Logger,
) *PostService {
	return &PostService{
		posts:   posts,
		blogs:   blogs,
		gcs:     gcs,
		bucket:  bucket,
		es:      es,
		esIndex: esIndex,
		log:     log,
	}
}

func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list posts", err)
	}
	return posts, nil
}

// Get resolves a post by id or slug, with author, comments and counters.
func (s *PostService) Get(ctx context.Context, idOrSlug string) (*entity.Post, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	return p, nil
}

// ImageUpload is an optional file attached to a post create or update.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type PostInput struct {
	Title   string
	Content string
	BlogID  string
	Image   *ImageUpload
}

func (s *PostService) Create(ctx context.Context, userID string, in PostInput) (*entity.Post, error) {
	slug := helpers.Slugify(in.Title)
	_, err := s.posts.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.KindConflict, "a post with this title already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Wrap(apperr.KindInternal, "check slug", err)
	}

	if in.BlogID != "" {
		blog, err := s.blogs.GetByID(ctx, in.BlogID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.New(apperr.KindNotFound, "blog not found")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "load blog", err)
		}
		if blog.UserID != userID {
			return nil, apperr.New(apperr.KindAuthFailed, "you can only post to your own blog")
		}
	}

	imageURL, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p := &entity.Post{
		Title:         in.Title,
		Slug:          slug,
		Content:       in.Content,
		FeaturedImage: imageURL,
		UserID:        userID,
		BlogID:        in.BlogID,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "a post with this title already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "create post", err)
	}

	s.indexPost(ctx, p)
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id, userID string, in PostInput) (*entity.Post, error) {
	existing, err := s.posts.GetByIDOrSlug(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	if existing.UserID != userID {
		return nil, apperr.New(apperr.KindNotFound, "post not found or not yours")
	}

	imageURL := existing.FeaturedImage
	if in.Image != nil {
		imageURL, err = s.uploadImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
	}

	p := &entity.Post{
		ID:            existing.ID,
		Title:         in.Title,
		Slug:          helpers.Slugify(in.Title),
		Content:       in.Content,
		FeaturedImage: imageURL,
		UserID:        userID,
		BlogID:        in.BlogID,
	}
	if err := s.posts.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.New(apperr.KindNotFound, "post not found or not yours")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.New(apperr.KindConflict, "a post with this title already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "update post", err)
	}

	s.indexPost(ctx, p)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	if err := s.posts.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "post not found or not yours")
		}
		return apperr.Wrap(apperr.KindInternal, "delete post", err)
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// HasLiked reports whether the caller currently likes the post.
func (s *PostService) HasLiked(ctx context.Context, idOrSlug, userID string) (bool, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperr.New(apperr.KindNotFound, "post not found")
		}
		return false, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	liked, err := s.posts.HasLiked(ctx, p.ID, userID)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "check like", err)
	}
	return liked, nil
}

// ToggleLike flips the caller's like on the post and returns the new state.
func (s *PostService) ToggleLike(ctx context.Context, idOrSlug, userID string) (repository.LikeResult, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.LikeResult{}, apperr.New(apperr.KindNotFound, "post not found")
		}
		return repository.LikeResult{}, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	res, err := s.posts.ToggleLike(ctx, p.ID, userID)
	if err != nil {
		return repository.LikeResult{}, apperr.Wrap(apperr.KindInternal, "toggle like", err)
	}
	return res, nil
}

func (s *PostService) AddComment(ctx context.Context, idOrSlug, userID, content string) (*entity.Comment, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load post", err)
	}

	_, err = s.posts.FindComment(ctx, p.ID, userID, content)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.KindConflict, "you already posted this comment")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Wrap(apperr.KindInternal, "check comment", err)
	}

	c := &entity.Comment{
		Content: content,
		UserID:  userID,
		PostID:  p.ID,
	}
	if err := s.posts.CreateComment(ctx, c); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create comment", err)
	}
	return c, nil
}

// ListComments returns all comments on a post, resolved by id or slug.
func (s *PostService) ListComments(ctx context.Context, idOrSlug string) ([]*entity.Comment, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	comments, err := s.posts.ListComments(ctx, p.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list comments", err)
	}
	return comments, nil
}

// GetComment returns a single comment, scoped to its post.
func (s *PostService) GetComment(ctx context.Context, idOrSlug, commentID string) (*entity.Comment, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	c, err := s.posts.GetComment(ctx, p.ID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "comment not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load comment", err)
	}
	return c, nil
}

func (s *PostService) DeleteComment(ctx context.Context, commentID, userID string) error {
	if err := s.posts.DeleteComment(ctx, commentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "comment not found or not yours")
		}
		return apperr.Wrap(apperr.KindInternal, "delete comment", err)
	}
	return nil
}

func (s *PostService) ToggleCommentLike(ctx context.Context, idOrSlug, commentID, userID string) (repository.LikeResult, error) {
	p, err := s.posts.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.LikeResult{}, apperr.New(apperr.KindNotFound, "post not found")
		}
		return repository.LikeResult{}, apperr.Wrap(apperr.KindInternal, "load post", err)
	}
	if _, err := s.posts.GetComment(ctx, p.ID, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.LikeResult{}, apperr.New(apperr.KindNotFound, "comment not found")
		}
		return repository.LikeResult{}, apperr.Wrap(apperr.KindInternal, "load comment", err)
	}
	res, err := s.posts.ToggleCommentLike(ctx, commentID, userID)
	if err != nil {
		return repository.LikeResult{}, apperr.Wrap(apperr.KindInternal, "toggle like", err)
	}
	return res, nil
}

// SearchResult is one full-text hit.
type SearchResult struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Slug  string  `json:"slug"`
	Score float64 `json:"score"`
}

// Search queries the posts index by title and content.
func (s *PostService) Search(ctx context.Context, query string, size int) ([]SearchResult, error) {
	if s.es == nil {
		return nil, apperr.New(apperr.KindUpstream, "search is not available")
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^2", "content"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "encode search query", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.esIndex),
		s.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "search is not available", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, apperr.Newf(apperr.KindUpstream, "search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					Title string `json:"title"`
					Slug  string `json:"slug"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "decode search response", err)
	}

	out := make([]SearchResult, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, SearchResult{
			ID:    h.ID,
			Title: h.Source.Title,
			Slug:  h.Source.Slug,
			Score: h.Score,
		})
	}
	return out, nil
}

func (s *PostService) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	if s.gcs == nil {
		return "", apperr.New(apperr.KindUpstream, "image storage is not available")
	}
	object := fmt.Sprintf("posts/%s%s", uuid.New().String(), strings.ToLower(path.Ext(img.Filename)))
	url, err := helpers.UploadImage(ctx, s.gcs, s.bucket, object, img.ContentType, img.Reader)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "upload image", err)
	}
	return url, nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.es == nil {
		return
	}
	doc, err := json.Marshal(map[string]any{
		"title":      p.Title,
		"slug":       p.Slug,
		"content":    p.Content,
		"user_id":    p.UserID,
		"created_at": p.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		s.log.WithError(err).Warn("encode post for indexing")
		return
	}
	req := esapi.IndexRequest{
		Index:      s.esIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(doc),
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		s.log.WithError(err).WithField("post_id", p.ID).Warn("index post")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.log.WithFields(logrus.Fields{"post_id": p.ID, "status": res.Status()}).Warn("index post")
	}
}

func (s *PostService) deleteFromIndex(ctx context.Context, id string) {
	if s.es == nil {
		return
	}
	req := esapi.DeleteRequest{Index: s.esIndex, DocumentID: id}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		s.log.WithError(err).WithField("post_id", id).Warn("remove post from index")
		return
	}
	defer res.Body.Close()
}
