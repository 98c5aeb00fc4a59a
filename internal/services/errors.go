package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every domain error below wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

var (
	ErrUserNotFound          = fmt.Errorf("%w: user", ErrNotFound)
	ErrRecordNotFound        = fmt.Errorf("%w: exercise record", ErrNotFound)
	ErrFriendRequestNotFound = fmt.Errorf("%w: friend request", ErrNotFound)
	ErrFriendNotFound        = fmt.Errorf("%w: friend", ErrNotFound)

	ErrAlreadyExercising = fmt.Errorf("%w: already exercising", ErrInvalidState)
	ErrNotExercising     = fmt.Errorf("%w: not exercising", ErrInvalidState)
	ErrCannotFriendSelf  = fmt.Errorf("%w: cannot friend self", ErrInvalidState)
	ErrAlreadyFriends    = fmt.Errorf("%w: already friends", ErrInvalidState)
	ErrAlreadyRequested  = fmt.Errorf("%w: already requested", ErrInvalidState)
	ErrUsernameTaken     = fmt.Errorf("%w: username already taken", ErrInvalidState)
)

// ValidationError reports per-field problems with submitted input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
