package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/services"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"specific not found", services.ErrRecordNotFound, http.StatusNotFound, "Exercise record not found"},
		{"bare not found", services.ErrNotFound, http.StatusNotFound, "Not found"},
		{"wrapped invalid state", fmt.Errorf("starting: %w", services.ErrAlreadyExercising), http.StatusConflict, "You are already exercising"},
		{"bare invalid state", services.ErrInvalidState, http.StatusConflict, "Conflict"},
		{"validation", &services.ValidationError{Fields: map[string]string{"diary": "bad"}}, http.StatusBadRequest, "Validation failed"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "index")
			assertErrorResponse(t, rr, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestWriteServiceError_LogsUnexpected(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/api/timer/stop", nil)
	req = req.WithContext(logging.WithContext(req.Context(), logging.New().SetOutput(&buf)))

	writeServiceError(httptest.NewRecorder(), req, errors.New("connection reset"), "")

	if !strings.Contains(buf.String(), "connection reset") {
		t.Fatalf("expected error to be logged, got %q", buf.String())
	}
}
