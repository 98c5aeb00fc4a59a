package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/models"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type SendRequestRequest struct {
	UserID string `json:"user_id"`
}

type FriendsResponse struct {
	Friends []models.FriendWithUser `json:"friends"`
}

type ReceivedRequestsResponse struct {
	ReceivedRequests []models.FriendRequestWithUser `json:"received_requests"`
}

type SentRequestsResponse struct {
	SentRequests []models.FriendRequestWithUser `json:"sent_requests"`
}

type UserSearchResponse struct {
	Query string                    `json:"query"`
	Users []models.UserSearchResult `json:"users"`
}

type FriendRequestResponse struct {
	Request *models.FriendRequest `json:"request"`
	Message string                `json:"message"`
	Next    string                `json:"next"`
}

type FriendResponse struct {
	Friend  *models.Friend `json:"friend"`
	Message string         `json:"message"`
	Next    string         `json:"next"`
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	query := r.URL.Query().Get("q")
	users, err := h.friendService.SearchUsers(r.Context(), user.ID, query)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if users == nil {
		users = []models.UserSearchResult{}
	}
	writeJSON(w, http.StatusOK, UserSearchResponse{Query: query, Users: users})
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if friends == nil {
		friends = []models.FriendWithUser{}
	}
	writeJSON(w, http.StatusOK, FriendsResponse{Friends: friends})
}

func (h *FriendHandler) ReceivedRequests(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	requests, err := h.friendService.ListReceivedRequests(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if requests == nil {
		requests = []models.FriendRequestWithUser{}
	}
	writeJSON(w, http.StatusOK, ReceivedRequestsResponse{ReceivedRequests: requests})
}

func (h *FriendHandler) SentRequests(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	requests, err := h.friendService.ListSentRequests(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if requests == nil {
		requests = []models.FriendRequestWithUser{}
	}
	writeJSON(w, http.StatusOK, SentRequestsResponse{SentRequests: requests})
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toUserID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	request, err := h.friendService.SendRequest(r.Context(), user.ID, toUserID)
	if err != nil {
		writeServiceError(w, r, err, nextUserSearch)
		return
	}

	logging.FromContext(r.Context()).Info("Friend request sent", logging.Fields{"to_user_id": toUserID.String()})
	writeJSON(w, http.StatusCreated, FriendRequestResponse{
		Request: request,
		Message: "Friend request sent",
		Next:    nextUserSearch,
	})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	friend, err := h.friendService.AcceptRequest(r.Context(), user.ID, requestID)
	if err != nil {
		writeServiceError(w, r, err, nextFriendRequests)
		return
	}

	writeJSON(w, http.StatusOK, FriendResponse{
		Friend:  friend,
		Message: "Friend request accepted",
		Next:    nextFriendRequests,
	})
}

func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := h.friendService.RejectRequest(r.Context(), user.ID, requestID); err != nil {
		writeServiceError(w, r, err, nextFriendRequests)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend request rejected", Next: nextFriendRequests})
}

func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := h.friendService.CancelRequest(r.Context(), user.ID, requestID); err != nil {
		writeServiceError(w, r, err, nextSentRequests)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend request cancelled", Next: nextSentRequests})
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	friendID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), user.ID, friendID); err != nil {
		writeServiceError(w, r, err, nextFriendsList)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend removed", Next: nextFriendsList})
}
