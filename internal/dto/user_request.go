package dto

import "github.com/blog3d/techblog-client/internal/model"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// ProfileResponse covers both shapes the profile endpoint is known to
// answer with: a wrapped `{user: {...}}` object or the user fields at the
// top level.
type ProfileResponse struct {
	User       *model.User `json:"user,omitempty"`
	ID         string      `json:"_id,omitempty"`
	FirstName  string      `json:"firstName,omitempty"`
	LastName   string      `json:"lastName,omitempty"`
	Email      string      `json:"email,omitempty"`
	Role       string      `json:"role,omitempty"`
	AvatarLink string      `json:"avatarLink,omitempty"`
}

// ResolveUser returns the wrapped user when present, else the top-level
// fields if they carry an id. Missing role defaults to "user".
func (r *ProfileResponse) ResolveUser() *model.User {
	var user *model.User
	switch {
	case r.User != nil && r.User.ID != "":
		u := *r.User
		user = &u
	case r.ID != "":
		user = &model.User{
			ID:         r.ID,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			Email:      r.Email,
			Role:       r.Role,
			AvatarLink: r.AvatarLink,
		}
	default:
		return nil
	}

	if user.Role == "" {
		user.Role = model.RoleUser
	}

	return user
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
