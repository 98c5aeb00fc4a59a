package main

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/workoutlog/internal/handlers"
	"github.com/HammerMeetNail/workoutlog/internal/middleware"
)

const friendRequestsPerHour = 30

type routerDeps struct {
	health   *handlers.HealthHandler
	auth     *handlers.AuthHandler
	timer    *handlers.TimerHandler
	exercise *handlers.ExerciseHandler
	friend   *handlers.FriendHandler

	authMiddleware     *middleware.AuthMiddleware
	csrf               *middleware.CSRFMiddleware
	securityHeaders    *middleware.SecurityHeaders
	cacheControl       *middleware.CacheControl
	compress           *middleware.Compress
	requestLogger      *middleware.RequestLogger
	authRateLimiter    *middleware.RateLimiter
	requestRateLimiter *middleware.RateLimiter
}

// newFriendRequestRateLimiter caps outgoing friend requests per user.
func newFriendRequestRateLimiter(client *redis.Client) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, friendRequestsPerHour, time.Hour, "ratelimit:friend_requests:", func(r *http.Request) string {
		if user := handlers.GetUserFromContext(r.Context()); user != nil {
			return user.ID.String()
		}
		return middleware.GetClientIP(r)
	}, false)
}

func newRouter(d routerDeps) http.Handler {
	requireAuth := d.authMiddleware.RequireAuth
	authed := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", d.health.Health)
	mux.HandleFunc("GET /ready", d.health.Ready)
	mux.HandleFunc("GET /live", d.health.Live)

	mux.HandleFunc("GET /api/csrf", d.csrf.GetToken)

	// Accounts
	mux.Handle("POST /api/auth/register", d.authRateLimiter.Middleware(http.HandlerFunc(d.auth.Register)))
	mux.Handle("POST /api/auth/login", d.authRateLimiter.Middleware(http.HandlerFunc(d.auth.Login)))
	mux.HandleFunc("POST /api/auth/logout", d.auth.Logout)
	mux.Handle("GET /api/auth/me", authed(d.auth.Me))

	// Timer
	mux.Handle("GET /api/timer", authed(d.timer.Status))
	mux.Handle("POST /api/timer/start", authed(d.timer.Start))
	mux.Handle("POST /api/timer/stop", authed(d.timer.Stop))

	// Records, diary and feed
	mux.Handle("GET /api/records", authed(d.exercise.List))
	mux.Handle("GET /api/records/{id}", authed(d.exercise.Get))
	mux.Handle("PUT /api/records/{id}/diary", authed(d.exercise.AttachDiary))
	mux.Handle("GET /api/feed", authed(d.exercise.Feed))

	// Friends
	mux.Handle("GET /api/friends", authed(d.friend.List))
	mux.Handle("GET /api/friends/search", authed(d.friend.Search))
	mux.Handle("DELETE /api/friends/{id}", authed(d.friend.Remove))
	mux.Handle("GET /api/friends/requests", authed(d.friend.ReceivedRequests))
	mux.Handle("GET /api/friends/requests/sent", authed(d.friend.SentRequests))
	mux.Handle("POST /api/friends/requests", requireAuth(d.requestRateLimiter.Middleware(http.HandlerFunc(d.friend.SendRequest))))
	mux.Handle("PUT /api/friends/requests/{id}/accept", authed(d.friend.AcceptRequest))
	mux.Handle("PUT /api/friends/requests/{id}/reject", authed(d.friend.RejectRequest))
	mux.Handle("DELETE /api/friends/requests/{id}", authed(d.friend.CancelRequest))

	// Build middleware chain (outermost last)
	var handler http.Handler = mux
	handler = d.authMiddleware.Authenticate(handler)
	handler = d.csrf.Protect(handler)
	handler = d.cacheControl.Apply(handler)
	handler = d.compress.Apply(handler)
	handler = d.securityHeaders.Apply(handler)
	handler = d.requestLogger.Apply(handler)
	return handler
}
