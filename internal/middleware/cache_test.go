package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCacheControl_Apply(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/feed", "no-store, no-cache, must-revalidate"},
		{"/api/records/123", "no-store, no-cache, must-revalidate"},
		{"/health", "no-cache"},
		{"/live", "no-cache"},
		{"/elsewhere", "no-store"},
	}

	handler := NewCacheControl().Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if got := rr.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
