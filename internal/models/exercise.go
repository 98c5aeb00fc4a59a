package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDiaryMaxLength = 4000
	FeedLimit             = 50
)

type ExerciseRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Diary           string    `json:"diary"`
	CreatedAt       time.Time `json:"created_at"`
}

// FeedRecord is a record as shown in a friend's feed.
type FeedRecord struct {
	ExerciseRecord
	Username string `json:"username"`
}

// DurationMinutes returns the whole minutes between start and end, rounded
// down. A clock that went backwards yields 0.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// DurationDisplay renders a minute count for people, e.g. "1h 5m".
func DurationDisplay(minutes int) string {
	switch {
	case minutes <= 0:
		return "less than a minute"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

type TimerState int

const (
	TimerIdle TimerState = iota
	TimerExercising
)

func (s TimerState) String() string {
	if s == TimerExercising {
		return "exercising"
	}
	return "idle"
}

// ExerciseTimer is the per-user session state. A user is exercising exactly
// when ExercisingSince is set.
type ExerciseTimer struct {
	UserID          uuid.UUID
	ExercisingSince *time.Time
}

func (t ExerciseTimer) State() TimerState {
	if t.ExercisingSince != nil {
		return TimerExercising
	}
	return TimerIdle
}

func (t ExerciseTimer) CanStop() bool { return t.State() == TimerExercising }

// Finish builds the record produced by stopping the timer at end. It returns
// false when the timer is idle.
func (t ExerciseTimer) Finish(end time.Time) (ExerciseRecord, bool) {
	if !t.CanStop() {
		return ExerciseRecord{}, false
	}
	start := *t.ExercisingSince
	if end.Before(start) {
		end = start
	}
	return ExerciseRecord{
		UserID:          t.UserID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: DurationMinutes(start, end),
	}, true
}

type TimerStatus struct {
	State          string     `json:"state"`
	IsExercising   bool       `json:"is_exercising"`
	StartTime      *time.Time `json:"start_time"`
	CurrentMinutes int        `json:"current_minutes"`
}

func (t ExerciseTimer) Status(now time.Time) TimerStatus {
	if !t.CanStop() {
		return TimerStatus{State: TimerIdle.String()}
	}
	return TimerStatus{
		State:          TimerExercising.String(),
		IsExercising:   true,
		StartTime:      t.ExercisingSince,
		CurrentMinutes: DurationMinutes(*t.ExercisingSince, now),
	}
}

// StopResult is what a successful stop hands to the diary step.
type StopResult struct {
	Record ExerciseRecord `json:"record"`
}
