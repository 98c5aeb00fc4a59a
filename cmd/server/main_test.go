package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HammerMeetNail/workoutlog/internal/config"
	"github.com/HammerMeetNail/workoutlog/internal/handlers"
	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/middleware"
	"github.com/HammerMeetNail/workoutlog/internal/models"
)

type okChecker struct{}

func (okChecker) Health(ctx context.Context) error { return nil }

type noSessions struct{}

func (noSessions) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	return nil, context.Canceled
}

// testRouter wires the real router with handlers whose services are never
// reached by the requests below.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.New().SetOutput(&bytes.Buffer{})
	return newRouter(routerDeps{
		health:   handlers.NewHealthHandler(okChecker{}, nil),
		auth:     handlers.NewAuthHandler(nil, nil, false),
		timer:    handlers.NewTimerHandler(nil),
		exercise: handlers.NewExerciseHandler(nil),
		friend:   handlers.NewFriendHandler(nil),

		authMiddleware:     middleware.NewAuthMiddleware(noSessions{}),
		csrf:               middleware.NewCSRFMiddleware(false),
		securityHeaders:    middleware.NewSecurityHeaders(false),
		cacheControl:       middleware.NewCacheControl(),
		compress:           middleware.NewCompress(),
		requestLogger:      middleware.NewRequestLogger(logger),
		authRateLimiter:    middleware.NewAuthRateLimiter(nil, 10),
		requestRateLimiter: newFriendRequestRateLimiter(nil),
	})
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: expected request id header", path)
		}
	}
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	routes := []string{
		"/api/auth/me",
		"/api/timer",
		"/api/records",
		"/api/records/6f1c0e52-1111-4d2e-9a55-000000000001",
		"/api/feed",
		"/api/friends",
		"/api/friends/search?q=a",
		"/api/friends/requests",
		"/api/friends/requests/sent",
	}
	for _, path := range routes {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(&http.Cookie{Name: "session_token", Value: "stale"})
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if rr.Header().Get("Cache-Control") != "no-store, no-cache, must-revalidate" {
				t.Errorf("unexpected cache header %q", rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestRouter_MutationsNeedCSRFThenAuth(t *testing.T) {
	router := testRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/timer/start", nil))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf token, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/timer/start", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "t"})
	req.Header.Set("X-CSRF-Token", "t")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with csrf token but no session, got %d", rr.Code)
	}
}

func TestRouter_CSRFEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/csrf", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "token") {
		t.Fatalf("unexpected csrf response %d %q", rr.Code, rr.Body.String())
	}
}

func TestRouter_UnknownMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/timer/start", nil)
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestResolveAuthRateLimit(t *testing.T) {
	logger := logging.New().SetOutput(&bytes.Buffer{})

	tests := []struct {
		name     string
		env      string
		explicit bool
		want     int64
	}{
		{"production default", "production", false, 10},
		{"development relaxed", "development", false, 100},
		{"explicit wins in development", "development", true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Environment = tt.env
			cfg.Auth.RateLimit = 10
			cfg.Auth.RateLimitSet = tt.explicit
			if got := resolveAuthRateLimit(cfg, logger); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
