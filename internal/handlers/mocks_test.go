package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

type mockUserService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &models.User{ID: uuid.New(), Username: params.Username, PasswordHash: params.PasswordHash}, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc         func(password string) (string, error)
	VerifyPasswordFunc       func(hash, password string) bool
	GenerateSessionTokenFunc func() (string, string, error)
	CreateSessionFunc        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc      func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc        func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) GenerateSessionToken() (string, string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc()
	}
	return "token", "hash", nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "session-token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

type mockTimerService struct {
	StatusFunc func(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error)
	StartFunc  func(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error)
	StopFunc   func(ctx context.Context, userID uuid.UUID) (*models.ExerciseRecord, error)
}

func (m *mockTimerService) Status(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, userID)
	}
	return &models.TimerStatus{}, nil
}

func (m *mockTimerService) Start(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID)
	}
	return &models.TimerStatus{IsExercising: true}, nil
}

func (m *mockTimerService) Stop(ctx context.Context, userID uuid.UUID) (*models.ExerciseRecord, error) {
	if m.StopFunc != nil {
		return m.StopFunc(ctx, userID)
	}
	return &models.ExerciseRecord{ID: uuid.New(), UserID: userID}, nil
}

type mockExerciseService struct {
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]models.ExerciseRecord, error)
	GetFunc         func(ctx context.Context, userID, recordID uuid.UUID) (*models.ExerciseRecord, error)
	AttachDiaryFunc func(ctx context.Context, userID, recordID uuid.UUID, diary string) (*models.ExerciseRecord, error)
	FeedFunc        func(ctx context.Context, userID uuid.UUID) ([]models.FeedRecord, error)
}

func (m *mockExerciseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ExerciseRecord, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockExerciseService) Get(ctx context.Context, userID, recordID uuid.UUID) (*models.ExerciseRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, recordID)
	}
	return nil, nil
}

func (m *mockExerciseService) AttachDiary(ctx context.Context, userID, recordID uuid.UUID, diary string) (*models.ExerciseRecord, error) {
	if m.AttachDiaryFunc != nil {
		return m.AttachDiaryFunc(ctx, userID, recordID, diary)
	}
	return nil, nil
}

func (m *mockExerciseService) Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedRecord, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, userID)
	}
	return nil, nil
}

type mockFriendService struct {
	SearchUsersFunc          func(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error)
	SendRequestFunc          func(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.FriendRequest, error)
	AcceptRequestFunc        func(ctx context.Context, userID, requestID uuid.UUID) (*models.Friend, error)
	RejectRequestFunc        func(ctx context.Context, userID, requestID uuid.UUID) error
	CancelRequestFunc        func(ctx context.Context, userID, requestID uuid.UUID) error
	RemoveFriendFunc         func(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriendsFunc          func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListReceivedRequestsFunc func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSentRequestsFunc     func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	FriendIDsFunc            func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockFriendService) SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, currentUserID, query)
	}
	return nil, nil
}

func (m *mockFriendService) SendRequest(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, fromUserID, toUserID)
	}
	return &models.FriendRequest{ID: uuid.New(), FromUserID: fromUserID, ToUserID: toUserID}, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.Friend, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, userID, requestID)
	}
	return &models.Friend{ID: uuid.New()}, nil
}

func (m *mockFriendService) RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(ctx, userID, requestID)
	}
	return nil
}

func (m *mockFriendService) CancelRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	if m.CancelRequestFunc != nil {
		return m.CancelRequestFunc(ctx, userID, requestID)
	}
	return nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFriendService) ListReceivedRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListReceivedRequestsFunc != nil {
		return m.ListReceivedRequestsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListSentRequestsFunc != nil {
		return m.ListSentRequestsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFriendService) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.FriendIDsFunc != nil {
		return m.FriendIDsFunc(ctx, userID)
	}
	return nil, nil
}
