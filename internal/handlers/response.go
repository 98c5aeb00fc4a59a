package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/models"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

// Views a client moves to after an action.
const (
	nextIndex          = "index"
	nextTimer          = "timer"
	nextDiary          = "diary"
	nextUserSearch     = "user_search"
	nextFriendsList    = "friends_list"
	nextFriendRequests = "friend_requests"
	nextSentRequests   = "sent_requests"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Next   string            `json:"next,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Next    string `json:"next,omitempty"`
}

// errorMessages are the user facing texts for specific service errors.
var errorMessages = []struct {
	err     error
	message string
}{
	{services.ErrAlreadyExercising, "You are already exercising"},
	{services.ErrNotExercising, "You have not started exercising"},
	{services.ErrCannotFriendSelf, "You cannot send a friend request to yourself"},
	{services.ErrAlreadyFriends, "You are already friends"},
	{services.ErrAlreadyRequested, "Friend request already sent"},
	{services.ErrUsernameTaken, "Username already taken"},
	{services.ErrUserNotFound, "User not found"},
	{services.ErrRecordNotFound, "Exercise record not found"},
	{services.ErrFriendRequestNotFound, "Friend request not found"},
	{services.ErrFriendNotFound, "Friend not found"},
}

func userMessage(err error, fallback string) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return fallback
}

// writeServiceError maps the service error kinds onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, next string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: verr.Fields, Next: next})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: userMessage(err, "Not found"), Next: next})
	case errors.Is(err, services.ErrInvalidState):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: userMessage(err, "Conflict"), Next: next})
	default:
		logging.FromContext(r.Context()).Error("Request failed", logging.Fields{
			"error":  err.Error(),
			"method": r.Method,
			"path":   r.URL.Path,
		})
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// requireUser writes a 401 and returns nil when the request is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
	}
	return user
}

func parsePathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
