package models

// MasteryEvaluation is the outcome of scoring a goal's logs against its
// mastery configuration.
type MasteryEvaluation struct {
	// Average is the mean percentage across all parseable scores, rounded to
	// the nearest whole percent.
	Average int

	// ScoredSessions is the number of logs whose score could be parsed.
	ScoredSessions int

	// Mastered is true when mastery is enabled and the most recent
	// MasteryCount sessions all scored at or above MasteryScore.
	Mastered bool
}
