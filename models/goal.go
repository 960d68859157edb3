package models

import "time"

// Goal is a tracked objective belonging to exactly one student. Mastery
// criteria are optional: when MasteryEnabled is set, a goal is considered
// mastered once MasteryCount consecutive sessions score at or above
// MasteryScore percent.
type Goal struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"student_id" validate:"required"`
	Subject        string    `json:"subject" validate:"required"`
	Description    string    `json:"description"`
	Active         bool      `json:"active"`
	MasteryEnabled bool      `json:"mastery_enabled"`
	MasteryScore   int       `json:"mastery_score" validate:"min=0,max=100"`
	MasteryCount   int       `json:"mastery_count" validate:"min=0"`
	Frequency      string    `json:"frequency"`
	CreatedAt      time.Time `json:"-"`
}
