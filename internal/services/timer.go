package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

// TimerService owns users.exercising_since. Start and Stop are the only
// writers of that column.
type TimerService struct {
	db  DB
	now func() time.Time
}

func NewTimerService(db DB) *TimerService {
	return &TimerService{db: db, now: time.Now}
}

func (s *TimerService) Status(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error) {
	timer, err := s.load(ctx, s.db, userID, false)
	if err != nil {
		return nil, err
	}
	status := timer.Status(s.now().UTC())
	return &status, nil
}

// Start flips an idle user to exercising. A second start leaves the original
// start time untouched and returns ErrAlreadyExercising.
func (s *TimerService) Start(ctx context.Context, userID uuid.UUID) (*models.TimerStatus, error) {
	now := s.now().UTC()

	result, err := s.db.Exec(ctx,
		`UPDATE users SET exercising_since = $2, updated_at = NOW()
		 WHERE id = $1 AND exercising_since IS NULL`,
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("starting timer: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking user existence: %w", err)
		}
		if !exists {
			return nil, ErrUserNotFound
		}
		return nil, ErrAlreadyExercising
	}

	status := models.ExerciseTimer{UserID: userID, ExercisingSince: &now}.Status(now)
	return &status, nil
}

// Stop closes the open session and records it with an empty diary. The user
// row is locked for the whole transaction so concurrent stops produce one
// record.
func (s *TimerService) Stop(ctx context.Context, userID uuid.UUID) (*models.ExerciseRecord, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin stop transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	timer, err := s.load(ctx, tx, userID, true)
	if err != nil {
		return nil, err
	}

	record, ok := timer.Finish(s.now().UTC())
	if !ok {
		return nil, ErrNotExercising
	}
	record.ID = uuid.New()

	err = tx.QueryRow(ctx,
		`INSERT INTO exercise_records (id, user_id, start_time, end_time, duration_minutes, diary)
		 VALUES ($1, $2, $3, $4, $5, '')
		 RETURNING created_at`,
		record.ID, record.UserID, record.StartTime, record.EndTime, record.DurationMinutes,
	).Scan(&record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting exercise record: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET exercising_since = NULL, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("clearing timer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit stop: %w", err)
	}
	committed = true

	return &record, nil
}

func (s *TimerService) load(ctx context.Context, db DBConn, userID uuid.UUID, lock bool) (models.ExerciseTimer, error) {
	query := `SELECT exercising_since FROM users WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	timer := models.ExerciseTimer{UserID: userID}
	err := db.QueryRow(ctx, query, userID).Scan(&timer.ExercisingSince)
	if errors.Is(err, pgx.ErrNoRows) {
		return timer, ErrUserNotFound
	}
	if err != nil {
		return timer, fmt.Errorf("loading timer: %w", err)
	}
	return timer, nil
}
