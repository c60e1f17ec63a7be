package cache

import "fmt"

const (
	BLOG_SLUG_KEY      = "blog:slug:%s"      // <slug>
	BLOGS_ALL_KEY      = "blogs:all"
	CATEGORY_BLOGS_KEY = "category:%s:blogs" // <categorySlug>
	CATEGORIES_KEY     = "categories:all"
)

func BlogSlugKey(slug string) string {
	return fmt.Sprintf(BLOG_SLUG_KEY, slug)
}

func CategoryBlogsKey(categorySlug string) string {
	return fmt.Sprintf(CATEGORY_BLOGS_KEY, categorySlug)
}
