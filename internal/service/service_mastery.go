package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/progress-keeper/progress-keeper/models"
)

type masteryService struct{}

// NewMasteryService constructs the mastery evaluator. Evaluate is a pure
// function over a goal and its logs.
func NewMasteryService() MasteryService {
	return &masteryService{}
}

// Evaluate parses every log score as a percentage and reports the rounded
// average alongside the mastery decision: the goal is mastered when mastery
// is enabled and the most recent MasteryCount parseable sessions all scored
// at or above MasteryScore.
//
// Logs are expected most-recent-first, the order [store.LogRepository]
// ListByGoal returns them in. Unparseable scores are skipped, not treated as
// zero.
func (s *masteryService) Evaluate(goal models.Goal, logs []models.LogEntry) models.MasteryEvaluation {
	var (
		scores []float64
		sum    float64
	)

	for _, entry := range logs {
		pct, ok := parseScore(entry.Score)
		if !ok {
			continue
		}
		scores = append(scores, pct)
		sum += pct
	}

	eval := models.MasteryEvaluation{ScoredSessions: len(scores)}
	if len(scores) == 0 {
		return eval
	}

	eval.Average = int(math.Round(sum / float64(len(scores))))

	if !goal.MasteryEnabled || goal.MasteryCount <= 0 || len(scores) < goal.MasteryCount {
		return eval
	}

	eval.Mastered = true
	for _, pct := range scores[:goal.MasteryCount] {
		if pct < float64(goal.MasteryScore) {
			eval.Mastered = false
			break
		}
	}

	return eval
}

// parseScore turns a free-form score into a percentage. Accepted forms are an
// "N/M" fraction ("7/10" -> 70) and a bare number taken as a percentage
// ("85" -> 85). Anything else is unparseable.
func parseScore(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if num, den, found := strings.Cut(raw, "/"); found {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d * 100, true
	}

	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}
