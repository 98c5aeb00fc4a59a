package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

const uniqueViolation = "23505"

const userColumns = `id, username, password_hash, exercising_since, created_at, updated_at`

type UserService struct {
	db DBConn
}

func NewUserService(db DBConn) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)",
		params.Username,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking username existence: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		uuid.New(), params.Username, params.PasswordHash,
	).Scan(scanUser(user)...)
	if err != nil {
		// A concurrent signup can win between the check and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return getUser(ctx, s.db, "id = $1", id)
}

// GetByUsername matches case-insensitively.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return getUser(ctx, s.db, "username = $1", username)
}

func getUser(ctx context.Context, db DBConn, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where,
		arg,
	).Scan(scanUser(user)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func scanUser(u *models.User) []any {
	return []any{&u.ID, &u.Username, &u.PasswordHash, &u.ExercisingSince, &u.CreatedAt, &u.UpdatedAt}
}
