package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/gin-gonic/gin"
)

func (s *Server) blogCreate(c *gin.Context) {
	var input dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.blogsBySlug[input.Slug]; taken {
		fail(c, http.StatusConflict, "A blog with this slug already exists")
		return
	}

	s.nextID++
	now := time.Now()
	blog := &model.Blog{
		ID:            "b" + strconv.Itoa(s.nextID),
		Title:         input.Title,
		Slug:          input.Slug,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Description:   input.Description,
		Tags:          input.Tags,
		Status:        input.Status,
		FeaturedImage: input.FeaturedImage,
		Likes:         []model.Like{},
		Comments:      []model.Comment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if cat, exists := s.categories[input.CategoryID]; exists {
		blog.Category = cat
	}
	s.blogs[blog.ID] = blog
	s.blogsBySlug[blog.Slug] = blog.ID
	s.likes[blog.ID] = make(map[string]bool)

	ok(c, *blog, "Blog created")
}

func (s *Server) blogUpdate(c *gin.Context) {
	var input dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Slug != nil && *input.Slug != blog.Slug {
		delete(s.blogsBySlug, blog.Slug)
		blog.Slug = *input.Slug
		s.blogsBySlug[blog.Slug] = blog.ID
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Excerpt != nil {
		blog.Excerpt = *input.Excerpt
	}
	if input.Status != nil {
		blog.Status = *input.Status
	}
	if input.Tags != nil {
		blog.Tags = input.Tags
	}
	blog.UpdatedAt = time.Now()

	ok(c, *blog, "Blog updated")
}

func (s *Server) blogDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	delete(s.blogsBySlug, blog.Slug)
	delete(s.blogs, blog.ID)
	delete(s.likes, blog.ID)

	ok(c, nil, "Blog deleted")
}

func (s *Server) categoriesList(c *gin.Context) {
	s.mu.Lock()
	categories := make([]model.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		categories = append(categories, *cat)
	}
	s.mu.Unlock()

	ok(c, categories, "")
}

func (s *Server) categoryBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	s.mu.Lock()
	var found *model.Category
	for _, cat := range s.categories {
		if cat.Slug == slug {
			copied := *cat
			found = &copied
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	ok(c, *found, "")
}

func (s *Server) categoryCreate(c *gin.Context) {
	var input dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cat := range s.categories {
		if cat.Slug == input.Slug {
			fail(c, http.StatusConflict, "A category with this slug already exists")
			return
		}
	}

	s.nextID++
	category := &model.Category{ID: "cat" + strconv.Itoa(s.nextID), Name: input.Name, Slug: input.Slug}
	s.categories[category.ID] = category

	ok(c, *category, "Category created")
}

func (s *Server) categoryUpdate(c *gin.Context) {
	var input dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, exists := s.categories[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}

	ok(c, *category, "Category updated")
}

func (s *Server) categoryDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[c.Param("id")]; !exists {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	delete(s.categories, c.Param("id"))

	ok(c, nil, "Category deleted")
}
