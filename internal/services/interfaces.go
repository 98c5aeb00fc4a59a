package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

// UserServiceInterface defines the contract for account lookups.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	GenerateSessionToken() (token string, hash string, err error)
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// TimerServiceInterface defines the exercise timer transitions.
type TimerServiceInterface interface {
	Status(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error)
	Start(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error)
	Stop(ctx context.Context, userID uuid.UUID) (*models.ExerciseRecord, error)
}

// ExerciseServiceInterface covers records, diaries and the friend feed.
type ExerciseServiceInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ExerciseRecord, error)
	Get(ctx context.Context, userID, recordID uuid.UUID) (*models.ExerciseRecord, error)
	AttachDiary(ctx context.Context, userID, recordID uuid.UUID, diary string) (*models.ExerciseRecord, error)
	Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedRecord, error)
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error)
	SendRequest(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.Friend, error)
	RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error
	CancelRequest(ctx context.Context, userID, requestID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListReceivedRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// FriendIDLister is the slice of the friend service the feed needs.
type FriendIDLister interface {
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
