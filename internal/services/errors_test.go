package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrUserNotFound, ErrNotFound},
		{ErrRecordNotFound, ErrNotFound},
		{ErrFriendRequestNotFound, ErrNotFound},
		{ErrFriendNotFound, ErrNotFound},
		{ErrAlreadyExercising, ErrInvalidState},
		{ErrNotExercising, ErrInvalidState},
		{ErrCannotFriendSelf, ErrInvalidState},
		{ErrAlreadyFriends, ErrInvalidState},
		{ErrAlreadyRequested, ErrInvalidState},
		{ErrUsernameTaken, ErrInvalidState},
		{&ValidationError{Fields: map[string]string{"diary": "too long"}}, ErrValidation},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("%v should be a %v", tt.err, tt.kind)
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "second", "a": "first"}}
	want := "validation failed: a: first; b: second"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRedisAdapter_NilClient(t *testing.T) {
	cache := NewRedisAdapter(nil)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Minute); !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("Set: expected ErrCacheUnavailable, got %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("Get: expected ErrCacheUnavailable, got %v", err)
	}
	if err := cache.Expire(ctx, "k", time.Minute); !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("Expire: expected ErrCacheUnavailable, got %v", err)
	}
	if err := cache.Del(ctx, "k"); !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("Del: expected ErrCacheUnavailable, got %v", err)
	}
}
