package dto

type CreateBlogRequest struct {
	Title         string   `json:"title" binding:"required,min=2"`
	Slug          string   `json:"slug" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Description   string   `json:"description,omitempty"`
	CategoryID    string   `json:"category" binding:"required"`
	SubcategoryID string   `json:"subcategory,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Status        string   `json:"status,omitempty"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
}

// UpdateBlogRequest carries only the fields being changed.
type UpdateBlogRequest struct {
	Title         *string  `json:"title,omitempty"`
	Slug          *string  `json:"slug,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Description   *string  `json:"description,omitempty"`
	CategoryID    *string  `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Status        *string  `json:"status,omitempty"`
	FeaturedImage *string  `json:"featuredImage,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Slug string `json:"slug" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}
