package models

// LogEntry is a single dated measurement belonging to exactly one goal.
//
// Score is free-form: either an "N/M" fraction ("7/10") or a bare number
// treated as a percentage ("85"). Parsing happens at evaluation time, not at
// write time, so whatever the recorder typed is preserved verbatim.
type LogEntry struct {
	ID                int64   `json:"id"`
	GoalID            int64   `json:"goal_id" validate:"required"`
	LogDate           string  `json:"log_date" validate:"required"`
	Score             string  `json:"score"`
	PromptLevel       string  `json:"prompt_level"`
	ManipulativesUsed bool    `json:"manipulatives_used"`
	ManipulativesType *string `json:"manipulatives_type"`
	Compliance        string  `json:"compliance"`
	Behavior          string  `json:"behavior"`
	TimeSpent         string  `json:"time_spent"`
	Notes             string  `json:"notes"`
	TesterName        string  `json:"tester_name"`
}
