package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

const DefaultSearchLimit = 20

type FriendService struct {
	db          DB
	searchLimit int
}

func NewFriendService(db DB, searchLimit int) *FriendService {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &FriendService{db: db, searchLimit: searchLimit}
}

// SearchUsers matches usernames containing query, case-insensitively. An
// empty query lists everyone. The caller is never included.
func (s *FriendService) SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.username,
		        EXISTS(
		          SELECT 1 FROM friends f
		          WHERE (f.user1_id = $1 AND f.user2_id = u.id)
		             OR (f.user1_id = u.id AND f.user2_id = $1)
		        ),
		        (SELECT r.id FROM friend_requests r
		         WHERE r.from_user_id = $1 AND r.to_user_id = u.id)
		 FROM users u
		 WHERE u.id <> $1
		   AND u.username ILIKE $2 ESCAPE '\'
		 ORDER BY u.username
		 LIMIT $3`,
		currentUserID, pattern, s.searchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	results := []models.UserSearchResult{}
	for rows.Next() {
		var u models.UserSearchResult
		if err := rows.Scan(&u.ID, &u.Username, &u.IsFriend, &u.SentRequestID); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return results, nil
}

func (s *FriendService) SendRequest(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.FriendRequest, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", toUserID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if fromUserID == toUserID {
		return nil, ErrCannotFriendSelf
	}

	friends, err := s.IsFriend(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	// A request in the other direction does not block this one.
	request := &models.FriendRequest{ID: uuid.New(), FromUserID: fromUserID, ToUserID: toUserID}
	err = s.db.QueryRow(ctx,
		`INSERT INTO friend_requests (id, from_user_id, to_user_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (from_user_id, to_user_id) DO NOTHING
		 RETURNING created_at`,
		request.ID, fromUserID, toUserID,
	).Scan(&request.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyRequested
	}
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return request, nil
}

// AcceptRequest turns a pending request addressed to userID into a friend
// edge. Pending requests in both directions between the pair are removed.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.Friend, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin accept transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	var req models.FriendRequest
	err = tx.QueryRow(ctx,
		`SELECT id, from_user_id, to_user_id, created_at
		 FROM friend_requests
		 WHERE id = $1 AND to_user_id = $2
		 FOR UPDATE`,
		requestID, userID,
	).Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFriendRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking friend request: %w", err)
	}

	// The pair index makes a concurrent accept of the reverse request wait
	// here and then fall through to reading its edge.
	friend := &models.Friend{ID: uuid.New(), User1ID: req.FromUserID, User2ID: req.ToUserID}
	err = tx.QueryRow(ctx,
		`INSERT INTO friends (id, user1_id, user2_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING
		 RETURNING created_at`,
		friend.ID, friend.User1ID, friend.User2ID,
	).Scan(&friend.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx,
			`SELECT id, user1_id, user2_id, created_at
			 FROM friends
			 WHERE (user1_id = $1 AND user2_id = $2)
			    OR (user1_id = $2 AND user2_id = $1)`,
			req.FromUserID, req.ToUserID,
		).Scan(&friend.ID, &friend.User1ID, &friend.User2ID, &friend.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("loading existing friend: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("creating friend: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE (from_user_id = $1 AND to_user_id = $2)
		    OR (from_user_id = $2 AND to_user_id = $1)`,
		req.FromUserID, req.ToUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("deleting friend requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit accept: %w", err)
	}
	committed = true

	return friend, nil
}

// RejectRequest deletes a request addressed to userID.
func (s *FriendService) RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	return s.deleteRequest(ctx, "to_user_id", userID, requestID)
}

// CancelRequest deletes a request sent by userID.
func (s *FriendService) CancelRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	return s.deleteRequest(ctx, "from_user_id", userID, requestID)
}

func (s *FriendService) deleteRequest(ctx context.Context, ownerColumn string, userID, requestID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friend_requests WHERE id = $1 AND `+ownerColumn+` = $2`,
		requestID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendRequestNotFound
	}
	return nil
}

// RemoveFriend deletes an edge userID participates in.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friends WHERE id = $1 AND (user1_id = $2 OR user2_id = $2)`,
		friendID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing friend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendNotFound
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	rows, err := s.db.Query(ctx,
		`SELECT f.id, f.created_at, u.id, u.username
		 FROM friends f
		 JOIN users u ON u.id = CASE WHEN f.user1_id = $1 THEN f.user2_id ELSE f.user1_id END
		 WHERE f.user1_id = $1 OR f.user2_id = $1
		 ORDER BY u.username`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	friends := []models.FriendWithUser{}
	for rows.Next() {
		var f models.FriendWithUser
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.Friend.ID, &f.Friend.Username); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}

	return friends, nil
}

// ListReceivedRequests returns pending requests addressed to userID with
// their senders.
func (s *FriendService) ListReceivedRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.from_user_id, r.to_user_id, r.created_at, u.id, u.username
		 FROM friend_requests r
		 JOIN users u ON u.id = r.from_user_id
		 WHERE r.to_user_id = $1
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

// ListSentRequests returns pending requests sent by userID with their
// recipients.
func (s *FriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listRequests(ctx,
		`SELECT r.id, r.from_user_id, r.to_user_id, r.created_at, u.id, u.username
		 FROM friend_requests r
		 JOIN users u ON u.id = r.to_user_id
		 WHERE r.from_user_id = $1
		 ORDER BY r.created_at DESC`,
		userID,
	)
}

func (s *FriendService) listRequests(ctx context.Context, sql string, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FriendRequestWithUser{}
	for rows.Next() {
		var r models.FriendRequestWithUser
		if err := rows.Scan(&r.ID, &r.FromUserID, &r.ToUserID, &r.CreatedAt, &r.User.ID, &r.User.Username); err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friend requests: %w", err)
	}

	return requests, nil
}

// FriendIDs walks the user's edges and collects the other participant of
// each.
func (s *FriendService) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user1_id, user2_id, created_at
		 FROM friends
		 WHERE user1_id = $1 OR user2_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friend ids: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.User1ID, &f.User2ID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		if f.Involves(userID) {
			ids = append(ids, f.Other(userID))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friend ids: %w", err)
	}

	return ids, nil
}

func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	var isFriend bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE (user1_id = $1 AND user2_id = $2)
			   OR (user1_id = $2 AND user2_id = $1)
		)`,
		userID, otherUserID,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
