package apitest

import (
	"net/http"
	"strings"
	"time"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/gin-gonic/gin"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
)

const tokenTTL = time.Hour

// userFromRequest resolves the authenticated user from the bearer token,
// falling back to the authToken cookie when no usable header is present.
func (s *Server) userFromRequest(c *gin.Context) (*model.User, bool) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if user, ok := s.userFromToken(strings.TrimPrefix(header, "Bearer ")); ok {
			return user, true
		}
	}

	if cookie, err := c.Cookie("authToken"); err == nil && cookie != "" {
		if user, ok := s.userFromToken(cookie); ok {
			return user, true
		}
	}

	return nil, false
}

func (s *Server) userFromToken(token string) (*model.User, bool) {
	claims, err := jwtmanager.DecodeJWT(token, s.Secret)
	if err != nil {
		return nil, false
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	user, exists := s.usersByID[id]
	s.mu.Unlock()
	if !exists {
		return nil, false
	}

	return &user, true
}

func (s *Server) adminMiddleware(c *gin.Context) {
	user, ok := s.userFromRequest(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user is not authorized")
		c.Abort()
		return
	}

	if user.Role != model.RoleAdmin {
		fail(c, http.StatusForbidden, "no access")
		c.Abort()
		return
	}

	c.Set("user", *user)
	c.Next()
}

func (s *Server) userProfile(c *gin.Context) {
	s.mu.Lock()
	s.profileCalls++
	s.mu.Unlock()

	user, ok := s.userFromRequest(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user is not authorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) userLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	seeded, exists := s.users[input.Email]
	s.mu.Unlock()
	if !exists || seeded.password != input.Password {
		fail(c, http.StatusBadRequest, "invalid email or password")
		return
	}

	token := s.SignToken(seeded.user.ID, seeded.user.Role, tokenTTL)
	user := seeded.user

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) userLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) subscribe(c *gin.Context) {
	var input dto.SubscribeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.subscribers = append(s.subscribers, input.Email)
	s.mu.Unlock()

	ok(c, nil, "Subscribed successfully")
}
