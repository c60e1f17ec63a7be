package model

import "time"

// CommentUser identifies the comment author: UserID for authenticated
// actors, GuestID plus a display name for anonymous ones.
type CommentUser struct {
	UserID  string `json:"userId,omitempty"`
	GuestID string `json:"guestId,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

type Comment struct {
	ID         string      `json:"_id"`
	User       CommentUser `json:"user"`
	Text       string      `json:"text"`
	IsApproved bool        `json:"isApproved"`
	Likes      int         `json:"likes"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
