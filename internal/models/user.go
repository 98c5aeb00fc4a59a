package models

import (
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 150
	PasswordMinLength = 8
	// bcrypt ignores anything past 72 bytes.
	PasswordMaxBytes = 72
)

type User struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	ExercisingSince *time.Time `json:"exercising_since,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CreateUserParams struct {
	Username     string
	PasswordHash string
}

type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidUsername reports whether name is 3-150 characters drawn from letters,
// digits and @.+-_ .
func ValidUsername(name string) bool {
	n := 0
	for _, c := range name {
		n++
		switch {
		case unicode.IsLetter(c), unicode.IsDigit(c):
		case c == '@', c == '.', c == '+', c == '-', c == '_':
		default:
			return false
		}
	}
	return n >= UsernameMinLength && n <= UsernameMaxLength
}
