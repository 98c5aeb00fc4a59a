package handlers

import (
	"fmt"
	"net/http"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/models"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

type TimerHandler struct {
	timerService services.TimerServiceInterface
}

func NewTimerHandler(timerService services.TimerServiceInterface) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

type TimerResponse struct {
	*models.TimerStatus
	Message string `json:"message,omitempty"`
	Next    string `json:"next,omitempty"`
}

type StopResponse struct {
	Record  *models.ExerciseRecord `json:"record"`
	Message string                 `json:"message"`
	Next    string                 `json:"next"`
}

func (h *TimerHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	status, err := h.timerService.Status(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, TimerResponse{TimerStatus: status})
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	status, err := h.timerService.Start(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, nextTimer)
		return
	}

	logging.FromContext(r.Context()).Info("Exercise started")
	writeJSON(w, http.StatusOK, TimerResponse{
		TimerStatus: status,
		Message:     "Exercise started",
		Next:        nextTimer,
	})
}

// Stop closes the running session and hands the new record to the diary step.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	record, err := h.timerService.Stop(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err, nextTimer)
		return
	}

	logging.FromContext(r.Context()).Info("Exercise recorded", logging.Fields{
		"record_id":        record.ID.String(),
		"duration_minutes": record.DurationMinutes,
	})
	writeJSON(w, http.StatusCreated, StopResponse{
		Record:  record,
		Message: fmt.Sprintf("Exercise recorded (%s)", models.DurationDisplay(record.DurationMinutes)),
		Next:    nextDiary,
	})
}
