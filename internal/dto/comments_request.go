package dto

// CreateCommentRequest is `{text}` for authenticated actors and
// `{text, name, email?}` for guests.
type CreateCommentRequest struct {
	Text  string `json:"text" binding:"required,min=1"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
