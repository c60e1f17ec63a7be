package service

import (
	"context"
	"time"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/auth"
	"github.com/blog3d/techblog-client/internal/cache"
	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/blog3d/techblog-client/internal/session"
	"go.uber.org/zap"
)

type Blog interface {
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
	FindAll(ctx context.Context) ([]model.Blog, error)
	FindByCategory(ctx context.Context, categorySlug string) ([]model.Blog, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type Engagement interface {
	Like(ctx context.Context, blog *model.Blog) error
	SubmitComment(ctx context.Context, blog *model.Blog, text string, name string, email string) (*model.Comment, error)
	LikeComment(ctx context.Context, blog *model.Blog, commentID string) error
	DeleteComment(ctx context.Context, blog *model.Blog, commentID string) error
}

type Admin interface {
	CreateBlog(ctx context.Context, req dto.CreateBlogRequest) (*model.Blog, error)
	UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest) (*model.Blog, error)
	DeleteBlog(ctx context.Context, blogID string) error
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	Refreshes() int64
}

type Newsletter interface {
	Subscribe(ctx context.Context, email string) error
}

type Service struct {
	Blog
	Engagement
	Admin
	Newsletter
}

func New(logger *zap.Logger, client *apiclient.Client, cacheStore cache.Store, resolver *session.Resolver, authManager *auth.Manager, cacheTTL time.Duration) *Service {
	return &Service{
		Blog:       newBlogService(logger, client, cacheStore, cacheTTL),
		Engagement: newEngagementService(logger, client, resolver, authManager),
		Admin:      newAdminService(logger, client, cacheStore),
		Newsletter: newNewsletterService(client),
	}
}
