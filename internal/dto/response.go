package dto

import "encoding/json"

// APIResponse is the envelope every backend endpoint answers with.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

func NewAPIResponse(success bool, data json.RawMessage, message string) APIResponse {
	return APIResponse{
		Success: success,
		Data:    data,
		Message: message,
	}
}

// LikeResult is the payload of POST /api/blogs/:id/like.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// CommentLikeResult is the payload of POST /api/blogs/:id/comments/:cid/like.
type CommentLikeResult struct {
	Likes int `json:"likes"`
}
