package service

import (
	"context"
	"sync/atomic"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/cache"
	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"go.uber.org/zap"
)

// adminService is a thin wrapper over the CRUD endpoints. Every successful
// mutation bumps a monotonic refresh counter that list views watch to
// retrigger their fetches, and drops the stale cache keys.
type adminService struct {
	logger    *zap.Logger
	client    *apiclient.Client
	cache     cache.Store
	refreshes atomic.Int64
}

func newAdminService(logger *zap.Logger, client *apiclient.Client, cacheStore cache.Store) Admin {
	return &adminService{
		logger: logger,
		client: client,
		cache:  cacheStore,
	}
}

func (s *adminService) Refreshes() int64 {
	return s.refreshes.Load()
}

func (s *adminService) bump(keys ...string) {
	s.refreshes.Add(1)
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Del(context.Background(), keys...); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cache keys %v: %s", keys, err.Error())
	}
}

func (s *adminService) CreateBlog(ctx context.Context, req dto.CreateBlogRequest) (*model.Blog, error) {
	blog, err := s.client.CreateBlog(ctx, req)
	if err != nil {
		return nil, err
	}

	s.bump(cache.BLOGS_ALL_KEY)

	return blog, nil
}

func (s *adminService) UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest) (*model.Blog, error) {
	blog, err := s.client.UpdateBlog(ctx, blogID, req)
	if err != nil {
		return nil, err
	}

	keys := []string{cache.BLOGS_ALL_KEY}
	if blog.Slug != "" {
		keys = append(keys, cache.BlogSlugKey(blog.Slug))
	}
	s.bump(keys...)

	return blog, nil
}

func (s *adminService) DeleteBlog(ctx context.Context, blogID string) error {
	if err := s.client.DeleteBlog(ctx, blogID); err != nil {
		return err
	}

	s.bump(cache.BLOGS_ALL_KEY)

	return nil
}

func (s *adminService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	category, err := s.client.CreateCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	s.bump(cache.CATEGORIES_KEY)

	return category, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.client.UpdateCategory(ctx, categoryID, req)
	if err != nil {
		return nil, err
	}

	s.bump(cache.CATEGORIES_KEY)

	return category, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.client.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}

	s.bump(cache.CATEGORIES_KEY)

	return nil
}
