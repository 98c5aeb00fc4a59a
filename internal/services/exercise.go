package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/workoutlog/internal/models"
)

const recordColumns = `id, user_id, start_time, end_time, duration_minutes, diary, created_at`

type ExerciseService struct {
	db             DBConn
	friends        FriendIDLister
	diaryMaxLength int
}

func NewExerciseService(db DBConn, friends FriendIDLister, diaryMaxLength int) *ExerciseService {
	if diaryMaxLength <= 0 {
		diaryMaxLength = models.DefaultDiaryMaxLength
	}
	return &ExerciseService{db: db, friends: friends, diaryMaxLength: diaryMaxLength}
}

// ListByUser returns the user's own records, newest first.
func (s *ExerciseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ExerciseRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+recordColumns+`
		 FROM exercise_records
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := []models.ExerciseRecord{}
	for rows.Next() {
		var r models.ExerciseRecord
		if err := rows.Scan(scanRecord(&r)...); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// Get returns a record owned by userID. Records of other users are reported
// as missing.
func (s *ExerciseService) Get(ctx context.Context, userID, recordID uuid.UUID) (*models.ExerciseRecord, error) {
	record := &models.ExerciseRecord{}
	err := s.db.QueryRow(ctx,
		`SELECT `+recordColumns+`
		 FROM exercise_records
		 WHERE id = $1 AND user_id = $2`,
		recordID, userID,
	).Scan(scanRecord(record)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return record, nil
}

// AttachDiary overwrites the diary of an owned record. No other column
// changes.
func (s *ExerciseService) AttachDiary(ctx context.Context, userID, recordID uuid.UUID, diary string) (*models.ExerciseRecord, error) {
	record, err := s.Get(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if err := ValidateDiary(diary, s.diaryMaxLength); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(ctx,
		`UPDATE exercise_records SET diary = $3 WHERE id = $1 AND user_id = $2`,
		recordID, userID, diary,
	)
	if err != nil {
		return nil, fmt.Errorf("updating diary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrRecordNotFound
	}

	record.Diary = diary
	return record, nil
}

// Feed returns friends' records, newest first, capped at models.FeedLimit.
func (s *ExerciseService) Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedRecord, error) {
	friendIDs, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.FeedRecord{}, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.user_id, r.start_time, r.end_time, r.duration_minutes, r.diary, r.created_at, u.username
		 FROM exercise_records r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = ANY($1)
		 ORDER BY r.created_at DESC
		 LIMIT $2`,
		friendIDs, models.FeedLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	defer rows.Close()

	feed := []models.FeedRecord{}
	for rows.Next() {
		var r models.FeedRecord
		if err := rows.Scan(append(scanRecord(&r.ExerciseRecord), &r.Username)...); err != nil {
			return nil, fmt.Errorf("scanning feed record: %w", err)
		}
		feed = append(feed, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed: %w", err)
	}

	return feed, nil
}

// ValidateDiary accepts valid UTF-8 text up to maxLength characters,
// including the empty string. NUL is rejected since Postgres TEXT cannot
// store it.
func ValidateDiary(diary string, maxLength int) error {
	if !utf8.ValidString(diary) {
		return &ValidationError{Fields: map[string]string{"diary": "Diary must be valid UTF-8 text."}}
	}
	if strings.ContainsRune(diary, 0) {
		return &ValidationError{Fields: map[string]string{"diary": "Diary must not contain null characters."}}
	}
	if n := utf8.RuneCountInString(diary); n > maxLength {
		return &ValidationError{Fields: map[string]string{
			"diary": fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", maxLength, n),
		}}
	}
	return nil
}

func scanRecord(r *models.ExerciseRecord) []any {
	return []any{&r.ID, &r.UserID, &r.StartTime, &r.EndTime, &r.DurationMinutes, &r.Diary, &r.CreatedAt}
}
