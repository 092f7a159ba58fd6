package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/postly/postly/internal/model"
	appErr "github.com/postly/postly/internal/pkg/errors"
	"github.com/postly/postly/internal/pkg/timeutil"
	"github.com/postly/postly/internal/repo"
)

// PostsPerPage is the fixed page size of the public listing.
const PostsPerPage = 10

type PostService struct {
	posts *repo.PostRepo
	users *repo.UserRepo
	cache *expirable.LRU[string, model.PostDetail]
}

func NewPostService(posts *repo.PostRepo, users *repo.UserRepo, cacheSize int, cacheTTL time.Duration) *PostService {
	s := &PostService{posts: posts, users: users}
	if cacheSize > 0 && cacheTTL > 0 {
		s.cache = expirable.NewLRU[string, model.PostDetail](cacheSize, nil, cacheTTL)
	}
	return s
}

// List returns one page of posts newest-first with author emails projected.
// Page numbers at or below 1 mean the first page.
func (s *PostService) List(ctx context.Context, page int) ([]model.PostDetail, error) {
	offset := uint(0)
	if page > 1 {
		offset = uint(page-1) * PostsPerPage
	}
	posts, err := s.posts.List(ctx, PostsPerPage, offset)
	if err != nil {
		return nil, err
	}
	return s.attachAuthors(ctx, posts)
}

func (s *PostService) Create(ctx context.Context, userID, title, description string) (*model.PostDetail, error) {
	now := timeutil.NowUnix()
	post := &model.Post{
		ID:          newID(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	details, err := s.attachAuthors(ctx, []model.Post{*post})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*model.PostDetail, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(postID); ok {
			return &cached, nil
		}
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	details, err := s.attachAuthors(ctx, []model.Post{*post})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(postID, details[0])
	}
	return &details[0], nil
}

// Update overwrites title and description. Only the creator may write; anyone
// else gets ErrForbidden even with a valid session.
func (s *PostService) Update(ctx context.Context, userID, postID, title, description string) (*model.PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	post.Title = title
	post.Description = description
	post.Mtime = timeutil.NowUnix()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Remove(postID)
	}
	details, err := s.attachAuthors(ctx, []model.Post{*post})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return appErr.ErrForbidden
	}
	if err := s.posts.Delete(ctx, postID, userID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(postID)
	}
	return nil
}

func (s *PostService) attachAuthors(ctx context.Context, posts []model.Post) ([]model.PostDetail, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.UserID]; ok {
			continue
		}
		seen[post.UserID] = struct{}{}
		ids = append(ids, post.UserID)
	}
	emails, err := s.users.EmailsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	details := make([]model.PostDetail, 0, len(posts))
	for _, post := range posts {
		details = append(details, model.PostDetail{Post: post, AuthorEmail: emails[post.UserID]})
	}
	return details, nil
}
