package model

import "time"

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Like holds exactly one of UserID/GuestID depending on whether the actor
// was authenticated at like-time.
type Like struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId,omitempty"`
	GuestID   string    `json:"guestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BlogAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Blog is the client-side view of a post. The authoritative state lives
// server-side; this copy is a cache, invalidated by refetch or patched
// optimistically after engagement calls. Likes is a partial view of the
// server's like set, while LikeCount is authoritative.
type Blog struct {
	ID                   string     `json:"_id"`
	Title                string     `json:"title"`
	Slug                 string     `json:"slug"`
	Content              string     `json:"content"`
	Excerpt              string     `json:"excerpt,omitempty"`
	Description          string     `json:"description,omitempty"`
	Category             *Category  `json:"category,omitempty"`
	Subcategory          *Category  `json:"subcategory,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	Status               string     `json:"status"`
	FeaturedImage        string     `json:"featuredImage,omitempty"`
	Views                int64      `json:"views"`
	ReadTime             int        `json:"readTime,omitempty"`
	Author               BlogAuthor `json:"author"`
	Likes                []Like     `json:"likes"`
	Comments             []Comment  `json:"comments"`
	AllowAnonymous       bool       `json:"allowAnonymous"`
	RequireApproval      bool       `json:"requireApproval"`
	LikeCount            int        `json:"likeCount"`
	ApprovedCommentCount int        `json:"approvedCommentCount"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// LikedBy reports whether the given actor identity has a like entry in the
// local partial view. Exactly one of userID/guestID should be non-empty.
func (b *Blog) LikedBy(userID string, guestID string) bool {
	for _, like := range b.Likes {
		if userID != "" && like.UserID == userID {
			return true
		}
		if guestID != "" && like.GuestID == guestID {
			return true
		}
	}
	return false
}
