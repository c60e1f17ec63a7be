package service

import (
	"context"
	"net/http"
	"time"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/cache"
	"github.com/blog3d/techblog-client/internal/model"
	"go.uber.org/zap"
)

type blogService struct {
	logger   *zap.Logger
	client   *apiclient.Client
	cache    cache.Store
	cacheTTL time.Duration
}

func newBlogService(logger *zap.Logger, client *apiclient.Client, cacheStore cache.Store, cacheTTL time.Duration) Blog {
	return &blogService{
		logger:   logger,
		client:   client,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
	}
}

func (s *blogService) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	if s.cache != nil {
		cachedBlog, err := cache.Get[model.Blog](s.cache, ctx, cache.BlogSlugKey(slug))
		if err == nil && cachedBlog != nil {
			s.incrViewsBestEffort(cachedBlog.ID)
			return cachedBlog, nil
		}
		if err != nil && err != cache.ErrMiss {
			s.logger.Sugar().Errorf("failed to get blog(%s) from cache: %s", slug, err.Error())
		}
	}

	blog, err := s.client.BlogBySlug(ctx, slug)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.BlogSlugKey(slug), blog, s.cacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set blog(%s) in cache: %s", slug, err.Error())
		}
	}

	s.incrViewsBestEffort(blog.ID)

	return blog, nil
}

// incrViewsBestEffort bumps the view counter without blocking the read
// path; failures are logged and otherwise ignored by contract.
func (s *blogService) incrViewsBestEffort(blogID string) {
	go func(id string) {
		ctx := context.Background()
		if err := s.client.IncrViews(ctx, id); err != nil {
			s.logger.Sugar().Errorf("failed to increment views for blog(%s): %s", id, err.Error())
		}
	}(blogID)
}

func (s *blogService) FindAll(ctx context.Context) ([]model.Blog, error) {
	if s.cache != nil {
		cachedBlogs, err := cache.GetMany[model.Blog](s.cache, ctx, cache.BLOGS_ALL_KEY)
		if err == nil {
			return cachedBlogs, nil
		}
		if err != cache.ErrMiss {
			s.logger.Sugar().Errorf("failed to get blog list from cache: %s", err.Error())
		}
	}

	blogs, err := s.client.Blogs(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.BLOGS_ALL_KEY, blogs, s.cacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set blog list in cache: %s", err.Error())
		}
	}

	return blogs, nil
}

func (s *blogService) FindByCategory(ctx context.Context, categorySlug string) ([]model.Blog, error) {
	if s.cache != nil {
		cachedBlogs, err := cache.GetMany[model.Blog](s.cache, ctx, cache.CategoryBlogsKey(categorySlug))
		if err == nil {
			return cachedBlogs, nil
		}
		if err != cache.ErrMiss {
			s.logger.Sugar().Errorf("failed to get category(%s) blogs from cache: %s", categorySlug, err.Error())
		}
	}

	blogs, err := s.client.CategoryBlogs(ctx, categorySlug)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.CategoryBlogsKey(categorySlug), blogs, s.cacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set category(%s) blogs in cache: %s", categorySlug, err.Error())
		}
	}

	return blogs, nil
}

func (s *blogService) Categories(ctx context.Context) ([]model.Category, error) {
	if s.cache != nil {
		cachedCategories, err := cache.GetMany[model.Category](s.cache, ctx, cache.CATEGORIES_KEY)
		if err == nil {
			return cachedCategories, nil
		}
		if err != cache.ErrMiss {
			s.logger.Sugar().Errorf("failed to get categories from cache: %s", err.Error())
		}
	}

	categories, err := s.client.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.CATEGORIES_KEY, categories, s.cacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set categories in cache: %s", err.Error())
		}
	}

	return categories, nil
}

func (s *blogService) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.client.CategoryBySlug(ctx, slug)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return category, nil
}
