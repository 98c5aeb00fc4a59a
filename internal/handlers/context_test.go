package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

func TestGetUserFromContext_WithUser(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "runner"}

	ctx := SetUserInContext(context.Background(), user)
	retrieved := GetUserFromContext(ctx)

	if retrieved == nil {
		t.Fatal("expected user to be retrieved from context")
	}
	if retrieved.ID != user.ID {
		t.Errorf("expected user ID %v, got %v", user.ID, retrieved.ID)
	}
}

func TestGetUserFromContext_WithoutUser(t *testing.T) {
	if GetUserFromContext(context.Background()) != nil {
		t.Error("expected nil user from empty context")
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), userContextKey, "not-a-user")
	if GetUserFromContext(ctx) != nil {
		t.Error("expected nil user when context holds wrong type")
	}
}
