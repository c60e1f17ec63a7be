// Package apitest is an in-memory gin implementation of the backend REST
// contract, used by the client integration tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SessionHeader = "X-Session-Id"

type seededUser struct {
	user     model.User
	password string
}

type Server struct {
	Engine *gin.Engine
	Secret []byte

	// ApproveGuestComments controls whether guest comments come back with
	// isApproved set.
	ApproveGuestComments bool

	mu           sync.Mutex
	users        map[string]seededUser // by email
	usersByID    map[string]model.User
	blogs        map[string]*model.Blog
	blogsBySlug  map[string]string
	categories   map[string]*model.Category
	likes        map[string]map[string]bool // blogID -> actor key
	commentLikes map[string]map[string]bool // commentID -> actor key
	subscribers  []string
	profileCalls int
	hits         map[string]int
	nextID       int
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		Secret:               []byte("apitest-secret"),
		ApproveGuestComments: true,
		users:                make(map[string]seededUser),
		usersByID:            make(map[string]model.User),
		blogs:                make(map[string]*model.Blog),
		blogsBySlug:          make(map[string]string),
		categories:           make(map[string]*model.Category),
		likes:                make(map[string]map[string]bool),
		commentLikes:         make(map[string]map[string]bool),
		hits:                 make(map[string]int),
	}
	s.Engine = s.initRoutes()

	return s
}

func (s *Server) initRoutes() *gin.Engine {
	r := gin.New()

	r.Use(func(c *gin.Context) {
		s.mu.Lock()
		s.hits[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
		c.Next()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		user := api.Group("/user")
		{
			user.GET("/profile", s.userProfile)
			user.POST("/login", s.userLogin)
			user.POST("/logout", s.userLogout)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", s.blogsList)
			blogs.GET("/slug/:slug", s.blogBySlug)
			blogs.GET("/categories/:slug/blogs", s.categoryBlogs)
			blogs.POST("/add", s.adminMiddleware, s.blogCreate)

			blog := blogs.Group("/:id")
			{
				blog.GET("/views", s.blogIncrViews)
				blog.POST("/like", s.blogLike)
				blog.POST("/comments", s.commentCreate)
				blog.POST("/comments/:cid/like", s.commentLike)
				blog.DELETE("/comments/:cid", s.commentDelete)
				blog.PATCH("", s.adminMiddleware, s.blogUpdate)
				blog.DELETE("", s.adminMiddleware, s.blogDelete)
			}
		}

		categories := api.Group("/categories")
		{
			categories.GET("", s.categoriesList)
			categories.GET("/slug/:slug", s.categoryBySlug)
			categories.POST("/add", s.adminMiddleware, s.categoryCreate)
			categories.PATCH("/:id", s.adminMiddleware, s.categoryUpdate)
			categories.DELETE("/:id", s.adminMiddleware, s.categoryDelete)
		}

		api.POST("/subscribe", s.subscribe)
	}

	return r
}

// SeedUser registers a login and returns the created profile.
func (s *Server) SeedUser(firstName, lastName, email, password, role string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user := model.User{
		ID:        "u" + strconv.Itoa(s.nextID),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
	}
	s.users[email] = seededUser{user: user, password: password}
	s.usersByID[user.ID] = user

	return user
}

func (s *Server) SeedCategory(name, slug string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	category := model.Category{ID: "cat" + strconv.Itoa(s.nextID), Name: name, Slug: slug}
	s.categories[category.ID] = &category

	return category
}

func (s *Server) SeedBlog(title, slug string) model.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	blog := &model.Blog{
		ID:        "b" + strconv.Itoa(s.nextID),
		Title:     title,
		Slug:      slug,
		Content:   "content of " + title,
		Status:    "published",
		Likes:     []model.Like{},
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.blogs[blog.ID] = blog
	s.blogsBySlug[slug] = blog.ID
	s.likes[blog.ID] = make(map[string]bool)

	return *blog
}

// SignToken issues an HS256 token the server's own middleware accepts.
func (s *Server) SignToken(userID, role string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString(s.Secret)
	return signed
}

// Hits reports how many requests matched the route, keyed as
// "METHOD /api/route/:param".
func (s *Server) Hits(methodAndRoute string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[methodAndRoute]
}

// TotalHits reports how many requests the server saw in total.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// ProfileCalls reports how many times the profile endpoint was hit.
func (s *Server) ProfileCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileCalls
}

// Subscribers returns the collected newsletter emails.
func (s *Server) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.subscribers...)
}

// Blog returns a copy of the server-side post state.
func (s *Server) Blog(id string) (model.Blog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blog, ok := s.blogs[id]
	if !ok {
		return model.Blog{}, false
	}
	return *blog, true
}

func ok(c *gin.Context, data interface{}, message string) {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(true, raw, message))
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewAPIResponse(false, nil, message))
}
