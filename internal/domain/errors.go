package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrAlreadyFollowing  = errors.New("already following")
	ErrUpload            = errors.New("upload failed")
)

// Session failures. Each wraps ErrUnauthorized so callers that only care
// about "log in again" can match on that.
var (
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenMalformed = fmt.Errorf("%w: token malformed", ErrUnauthorized)
	ErrUserGone       = fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
)
