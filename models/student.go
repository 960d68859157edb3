package models

import "time"

// Student is the subject of tracked records. A student owns zero or more
// goals; deleting a student cascades to its goals and, transitively, to all
// logs under those goals.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	StudentID string    `json:"student_id"`
	Grade     string    `json:"grade"`
	ClassType string    `json:"class_type"`
	IEPDate   *string   `json:"iep_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"-"`
}
