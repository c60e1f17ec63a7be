package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
)

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.doEnveloped(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := c.doEnveloped(ctx, http.MethodGet, "/api/categories/slug/"+url.PathEscape(slug), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.doEnveloped(ctx, http.MethodPost, "/api/categories/add", req, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.doEnveloped(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(categoryID), req, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.doEnveloped(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(categoryID), nil, nil, nil)
}
