package service

import "errors"

var (
	ErrInternal         = errors.New("internal error")
	ErrBlogNotFound     = errors.New("blog post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrBusy             = errors.New("a submission for this resource is already in flight")
	ErrEmptyComment     = errors.New("comment cannot be empty")
	ErrNameRequired     = errors.New("please enter your name")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
)
