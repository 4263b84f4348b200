package dto

// CreateCommentRequest is what the comment action hands to the content service
type CreateCommentRequest struct {
	ParentPostID string
	UserID       string
	Content      string
}

// CommentForm is the form body of POST /projects/:slug
type CommentForm struct {
	Comment string `form:"comment"`
}
