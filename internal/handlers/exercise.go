package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HammerMeetNail/workoutlog/internal/models"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

type ExerciseHandler struct {
	exerciseService services.ExerciseServiceInterface
}

func NewExerciseHandler(exerciseService services.ExerciseServiceInterface) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type RecordListResponse struct {
	ExerciseRecords []models.ExerciseRecord `json:"exercise_records"`
}

type FeedResponse struct {
	ExerciseRecords []models.FeedRecord `json:"exercise_records"`
}

type RecordResponse struct {
	Record  *models.ExerciseRecord `json:"record"`
	Message string                 `json:"message,omitempty"`
	Next    string                 `json:"next,omitempty"`
}

type DiaryRequest struct {
	Diary string `json:"diary"`
}

// DiaryErrorResponse echoes the submitted text so the form can be re-shown.
type DiaryErrorResponse struct {
	ErrorResponse
	Diary string `json:"diary"`
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	records, err := h.exerciseService.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if records == nil {
		records = []models.ExerciseRecord{}
	}
	writeJSON(w, http.StatusOK, RecordListResponse{ExerciseRecords: records})
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	recordID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.exerciseService.Get(r.Context(), user.ID, recordID)
	if err != nil {
		writeServiceError(w, r, err, nextIndex)
		return
	}
	writeJSON(w, http.StatusOK, RecordResponse{Record: record})
}

func (h *ExerciseHandler) AttachDiary(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	recordID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req DiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.exerciseService.AttachDiary(r.Context(), user.ID, recordID, req.Diary)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, DiaryErrorResponse{
			ErrorResponse: ErrorResponse{Error: "Validation failed", Fields: verr.Fields, Next: nextDiary},
			Diary:         req.Diary,
		})
		return
	}
	if err != nil {
		writeServiceError(w, r, err, nextIndex)
		return
	}

	writeJSON(w, http.StatusOK, RecordResponse{Record: record, Message: "Diary saved", Next: nextIndex})
}

func (h *ExerciseHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	records, err := h.exerciseService.Feed(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	if records == nil {
		records = []models.FeedRecord{}
	}
	writeJSON(w, http.StatusOK, FeedResponse{ExerciseRecords: records})
}
