package ecellweb

import (
	"context"

	"go.uber.org/zap"

	"github.com/ecellfcrit/ecellweb/content"
)

// PostService serves the LinkedIn-style post feed.
type PostService struct {
	content content.Fetcher
	log     *zap.Logger
}

func NewPostService(f content.Fetcher, logger *zap.Logger) *PostService {
	return &PostService{content: f, log: logger.Named("posts")}
}

// GetRecentPosts returns at most limit posts, most recent first. A
// non-positive limit means the default tier of six.
func (s *PostService) GetRecentPosts(ctx context.Context, limit int) []content.Post {
	if limit <= 0 {
		limit = content.RecentPostsLimit
	}
	posts := fetchList(ctx, s.content, s.log, content.RecentPosts(limit), content.DecodePosts)
	content.SortPostsByPublished(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// GetFeaturedPosts returns every featured post, most recent first.
func (s *PostService) GetFeaturedPosts(ctx context.Context) []content.Post {
	posts := fetchList(ctx, s.content, s.log, content.FeaturedPosts(), content.DecodePosts)
	content.SortPostsByPublished(posts)
	return posts
}

func (s *PostService) GetPostsByCategory(ctx context.Context, cat content.PostCategory) []content.Post {
	posts := fetchList(ctx, s.content, s.log, content.PostsByCategory(cat), content.DecodePosts)
	content.SortPostsByPublished(posts)
	return posts
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (content.Post, bool) {
	return fetchOne(ctx, s.content, s.log, content.PostBySlug(slug), content.DecodePost)
}
