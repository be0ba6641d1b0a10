package models

import "errors"

// Domain errors surfaced by the service layer. Handlers map these to HTTP
// statuses; everything else is treated as an internal failure.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrSelfFollow = errors.New("cannot follow or unfollow yourself")

	ErrTweetNotFound  = errors.New("tweet not found")
	ErrNotTweetAuthor = errors.New("only the author can delete a tweet")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrContentTooLong = errors.New("content must be at most 150 characters")
	ErrTitleTooLong   = errors.New("title must be at most 30 characters")

	ErrInvalidSession = errors.New("invalid or expired session")
)
