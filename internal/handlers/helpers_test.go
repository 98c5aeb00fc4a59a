package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

// newRequest builds a request carrying user (when non-nil), a JSON body
// (when non-nil) and the {id} path value (when non-empty).
func newRequest(t *testing.T, method, path string, user *models.User, body interface{}, id string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = strings.NewReader(raw)
		} else {
			data, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if user != nil {
		req = req.WithContext(SetUserInContext(req.Context(), user))
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", rr.Body.String(), err)
	}
}

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) ErrorResponse {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rr.Code, rr.Body.String())
	}
	if ct := rr.Result().Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected content type application/json, got %q", ct)
	}

	var response ErrorResponse
	decodeBody(t, rr, &response)
	if response.Error != message {
		t.Fatalf("expected error %q, got %q", message, response.Error)
	}
	return response
}
