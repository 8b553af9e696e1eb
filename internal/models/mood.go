package models

import "time"

// MoodEntry is one mood classification, owned by exactly one user.
type MoodEntry struct {
	ID          int64
	UserID      int64
	Level       int
	MainFeeling *string
	Notes       *string
	RecordedAt  time.Time
}
