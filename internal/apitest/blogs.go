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

// actorKey identifies the acting identity for like toggling: the bearer
// user when one authenticates, else the session header.
func (s *Server) actorKey(c *gin.Context) (string, *model.User, bool) {
	if user, ok := s.userFromRequest(c); ok {
		return "user:" + user.ID, user, true
	}
	if sid := c.GetHeader(SessionHeader); sid != "" {
		return "guest:" + sid, nil, true
	}
	return "", nil, false
}

func (s *Server) blogsList(c *gin.Context) {
	s.mu.Lock()
	blogs := make([]model.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		blogs = append(blogs, *b)
	}
	s.mu.Unlock()

	ok(c, blogs, "")
}

func (s *Server) blogBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	s.mu.Lock()
	id, exists := s.blogsBySlug[slug]
	var blog model.Blog
	if exists {
		blog = *s.blogs[id]
	}
	s.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	ok(c, blog, "")
}

func (s *Server) categoryBlogs(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	s.mu.Lock()
	var found bool
	for _, cat := range s.categories {
		if cat.Slug == slug {
			found = true
			break
		}
	}
	var blogs []model.Blog
	if found {
		blogs = make([]model.Blog, 0)
		for _, b := range s.blogs {
			if b.Category != nil && b.Category.Slug == slug {
				blogs = append(blogs, *b)
			}
		}
	}
	s.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	ok(c, blogs, "")
}

func (s *Server) blogIncrViews(c *gin.Context) {
	s.mu.Lock()
	blog, exists := s.blogs[c.Param("id")]
	if exists {
		blog.Views++
	}
	s.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	ok(c, nil, "")
}

func (s *Server) blogLike(c *gin.Context) {
	actor, user, identified := s.actorKey(c)
	if !identified {
		fail(c, http.StatusBadRequest, "Unable to identify you")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	likes := s.likes[blog.ID]
	liked := !likes[actor]
	if liked {
		likes[actor] = true
		entry := model.Like{
			ID:        "l" + strconv.Itoa(len(likes)),
			CreatedAt: time.Now(),
		}
		if user != nil {
			entry.UserID = user.ID
		} else {
			entry.GuestID = strings.TrimPrefix(actor, "guest:")
		}
		blog.Likes = append(blog.Likes, entry)
	} else {
		delete(likes, actor)
		kept := blog.Likes[:0]
		for _, l := range blog.Likes {
			if user != nil && l.UserID == user.ID {
				continue
			}
			if user == nil && l.GuestID == strings.TrimPrefix(actor, "guest:") {
				continue
			}
			kept = append(kept, l)
		}
		blog.Likes = kept
	}
	blog.LikeCount = len(likes)

	message := "Like removed"
	if liked {
		message = "Blog liked"
	}

	ok(c, dto.LikeResult{Liked: liked, LikeCount: blog.LikeCount}, message)
}

func (s *Server) commentCreate(c *gin.Context) {
	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, authenticated := s.userFromRequest(c)
	if !authenticated && strings.TrimSpace(input.Name) == "" {
		fail(c, http.StatusBadRequest, "Name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	s.nextID++
	now := time.Now()
	comment := model.Comment{
		ID:        "c" + strconv.Itoa(s.nextID),
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if authenticated {
		comment.User = model.CommentUser{
			UserID: user.ID,
			Name:   user.FirstName + " " + user.LastName,
			Email:  user.Email,
		}
		comment.IsApproved = true
	} else {
		comment.User = model.CommentUser{
			GuestID: c.GetHeader(SessionHeader),
			Name:    input.Name,
			Email:   input.Email,
		}
		comment.IsApproved = s.ApproveGuestComments
	}

	blog.Comments = append(blog.Comments, comment)
	if comment.IsApproved {
		blog.ApprovedCommentCount++
	}

	message := "Comment added"
	if !comment.IsApproved {
		message = "Comment submitted for approval"
	}

	ok(c, comment, message)
}

func (s *Server) commentLike(c *gin.Context) {
	actor, _, identified := s.actorKey(c)
	if !identified {
		fail(c, http.StatusBadRequest, "Unable to identify you")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	commentID := c.Param("cid")
	for i := range blog.Comments {
		if blog.Comments[i].ID != commentID {
			continue
		}

		likes := s.commentLikes[commentID]
		if likes == nil {
			likes = make(map[string]bool)
			s.commentLikes[commentID] = likes
		}
		if likes[actor] {
			delete(likes, actor)
		} else {
			likes[actor] = true
		}
		blog.Comments[i].Likes = len(likes)

		ok(c, dto.CommentLikeResult{Likes: blog.Comments[i].Likes}, "Comment liked")
		return
	}

	fail(c, http.StatusNotFound, "Comment not found")
}

func (s *Server) commentDelete(c *gin.Context) {
	user, authenticated := s.userFromRequest(c)
	if !authenticated {
		fail(c, http.StatusUnauthorized, "user is not authorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blog, exists := s.blogs[c.Param("id")]
	if !exists {
		fail(c, http.StatusNotFound, "Blog not found")
		return
	}

	commentID := c.Param("cid")
	for i := range blog.Comments {
		if blog.Comments[i].ID != commentID {
			continue
		}

		if blog.Comments[i].User.UserID != user.ID && user.Role != model.RoleAdmin {
			fail(c, http.StatusForbidden, "no access")
			return
		}

		if blog.Comments[i].IsApproved {
			blog.ApprovedCommentCount--
		}
		blog.Comments = append(blog.Comments[:i], blog.Comments[i+1:]...)

		ok(c, nil, "Comment deleted")
		return
	}

	fail(c, http.StatusNotFound, "Comment not found")
}
