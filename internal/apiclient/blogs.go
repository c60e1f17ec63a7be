package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/blog3d/techblog-client/internal/transport"
)

func (c *Client) Blogs(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := c.doEnveloped(ctx, http.MethodGet, "/api/blogs", nil, nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *Client) BlogBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	if err := c.doEnveloped(ctx, http.MethodGet, "/api/blogs/slug/"+url.PathEscape(slug), nil, nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) CategoryBlogs(ctx context.Context, categorySlug string) ([]model.Blog, error) {
	var blogs []model.Blog
	path := "/api/blogs/categories/" + url.PathEscape(categorySlug) + "/blogs"
	if err := c.doEnveloped(ctx, http.MethodGet, path, nil, nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// IncrViews bumps the view counter. Best-effort by contract: callers are
// expected to ignore the error beyond logging.
func (c *Client) IncrViews(ctx context.Context, blogID string) error {
	return c.doEnveloped(ctx, http.MethodGet, "/api/blogs/"+url.PathEscape(blogID)+"/views", nil, nil, nil)
}

// LikeBlog toggles the actor's like on a post. The explicit per-call
// credentials implement the identity resolution rule for engagement.
func (c *Client) LikeBlog(ctx context.Context, blogID string, creds transport.Credentials) (*dto.LikeResult, error) {
	var result dto.LikeResult
	path := "/api/blogs/" + url.PathEscape(blogID) + "/like"
	if err := c.doEnveloped(ctx, http.MethodPost, path, struct{}{}, &creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AddComment(ctx context.Context, blogID string, req dto.CreateCommentRequest, creds transport.Credentials) (*model.Comment, error) {
	var comment model.Comment
	path := "/api/blogs/" + url.PathEscape(blogID) + "/comments"
	if err := c.doEnveloped(ctx, http.MethodPost, path, req, &creds, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) LikeComment(ctx context.Context, blogID string, commentID string, creds transport.Credentials) (*dto.CommentLikeResult, error) {
	var result dto.CommentLikeResult
	path := "/api/blogs/" + url.PathEscape(blogID) + "/comments/" + url.PathEscape(commentID) + "/like"
	if err := c.doEnveloped(ctx, http.MethodPost, path, struct{}{}, &creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteComment(ctx context.Context, blogID string, commentID string, creds transport.Credentials) error {
	path := "/api/blogs/" + url.PathEscape(blogID) + "/comments/" + url.PathEscape(commentID)
	return c.doEnveloped(ctx, http.MethodDelete, path, nil, &creds, nil)
}

func (c *Client) CreateBlog(ctx context.Context, req dto.CreateBlogRequest) (*model.Blog, error) {
	var blog model.Blog
	if err := c.doEnveloped(ctx, http.MethodPost, "/api/blogs/add", req, nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest) (*model.Blog, error) {
	var blog model.Blog
	if err := c.doEnveloped(ctx, http.MethodPatch, "/api/blogs/"+url.PathEscape(blogID), req, nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) DeleteBlog(ctx context.Context, blogID string) error {
	return c.doEnveloped(ctx, http.MethodDelete, "/api/blogs/"+url.PathEscape(blogID), nil, nil, nil)
}
