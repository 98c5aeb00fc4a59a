package middleware

import (
	"context"
	"net/http"

	"github.com/HammerMeetNail/workoutlog/internal/handlers"
	"github.com/HammerMeetNail/workoutlog/internal/logging"
	"github.com/HammerMeetNail/workoutlog/internal/models"
)

const sessionCookieName = "session_token"

// SessionValidator resolves a session cookie to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.User, error)
}

type AuthMiddleware struct {
	authService SessionValidator
}

func NewAuthMiddleware(authService SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the session and adds user to context if valid.
// Does not reject unauthenticated requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authService.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			logging.FromContext(r.Context()).Debug("Ignoring invalid session", logging.Fields{"error": err.Error()})
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetUserInContext(r.Context(), user)
		ctx = logging.WithContext(ctx, logging.FromContext(ctx).WithField("user_id", user.ID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.GetUserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
