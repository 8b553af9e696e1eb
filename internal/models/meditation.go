package models

import "time"

// Meditation is a catalog item. The catalog is read-only from the core's
// perspective; rows are seeded by migrations.
type Meditation struct {
	ID              int64
	Title           string
	Description     string
	DurationMinutes int
	AudioURL        string
	Type            string
	Category        string
	CoverImage      string
}

// MeditationCompletion records one finished meditation session.
type MeditationCompletion struct {
	ID            int64
	UserID        int64
	MeditationID  int64
	ActualMinutes int
	CompletedAt   time.Time
}

// MeditationStats aggregates a user's completion history.
type MeditationStats struct {
	TotalSessions int64
	TotalMinutes  int64
	Categories    map[string]int64
}
