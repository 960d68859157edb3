package service

import (
	"time"

	"github.com/progress-keeper/progress-keeper/models"
)

type stalenessService struct{}

// NewStalenessService constructs the backup-recency classifier. Classify is a
// pure function; the service holds no state and touches no storage.
func NewStalenessService() StalenessService {
	return &stalenessService{}
}

// Classify maps the last backup timestamp to a staleness tier:
//
//	no profile yet        -> NotYetOnboarded (reminders suppressed)
//	profile, never backed -> Never (most severe)
//	more than 7 days ago  -> Overdue
//	4 to 7 days ago       -> Warning
//	at most 3 days ago    -> Safe
func (s *stalenessService) Classify(settings models.Settings, now time.Time) models.StalenessStatus {
	if !settings.HasProfile() {
		return models.StalenessStatus{Tier: models.StalenessNotYetOnboarded}
	}

	if settings.LastBackupAt == nil {
		return models.StalenessStatus{Tier: models.StalenessNever}
	}

	days := int(now.Sub(*settings.LastBackupAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days > 7:
		return models.StalenessStatus{Tier: models.StalenessOverdue, Days: days}
	case days > 3:
		return models.StalenessStatus{Tier: models.StalenessWarning, Days: days}
	default:
		return models.StalenessStatus{Tier: models.StalenessSafe, Days: days}
	}
}
