package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequest struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Friend is one symmetric friendship edge. The pair is unordered.
type Friend struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Other returns the participant that is not userID.
func (f Friend) Other(userID uuid.UUID) uuid.UUID {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

func (f Friend) Involves(userID uuid.UUID) bool {
	return f.User1ID == userID || f.User2ID == userID
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type FriendWithUser struct {
	ID        uuid.UUID   `json:"id"`
	Friend    UserSummary `json:"friend"`
	CreatedAt time.Time   `json:"created_at"`
}

// FriendRequestWithUser carries the counterpart of a request: the sender for
// received requests, the recipient for sent ones.
type FriendRequestWithUser struct {
	FriendRequest
	User UserSummary `json:"user"`
}

type UserSearchResult struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	IsFriend      bool       `json:"is_friend"`
	SentRequestID *uuid.UUID `json:"sent_request_id"`
}
