package models

import "time"

// AssessmentResult is one self-assessment outcome, owned by exactly one
// user. Answers is the raw questionnaire payload, stored as JSONB.
type AssessmentResult struct {
	ID         int64
	UserID     int64
	Type       string
	Answers    map[string]any
	Score      int
	ResultText *string
	TakenAt    time.Time
}
