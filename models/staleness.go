package models

// StalenessTier classifies how recent the last backup is. The tier is an
// explicit tagged variant rather than a magnitude with sentinel values, so
// "never backed up" cannot be confused with "very stale".
type StalenessTier int

const (
	// StalenessNotYetOnboarded suppresses reminders until a profile exists;
	// onboarding owns that flow.
	StalenessNotYetOnboarded StalenessTier = iota

	// StalenessNever means a profile exists but no backup was ever taken.
	// This is the most severe tier.
	StalenessNever

	// StalenessOverdue means the last backup is more than 7 days old.
	StalenessOverdue

	// StalenessWarning means the last backup is more than 3 and at most 7
	// days old.
	StalenessWarning

	// StalenessSafe means the last backup is at most 3 days old.
	StalenessSafe
)

// String returns the tier name for logs and diagnostics.
func (t StalenessTier) String() string {
	switch t {
	case StalenessNotYetOnboarded:
		return "not_yet_onboarded"
	case StalenessNever:
		return "never"
	case StalenessOverdue:
		return "overdue"
	case StalenessWarning:
		return "warning"
	case StalenessSafe:
		return "safe"
	default:
		return "unknown"
	}
}

// StalenessStatus pairs the tier with the elapsed days behind it. Days is
// meaningful only for Overdue, Warning and Safe; it is zero otherwise.
type StalenessStatus struct {
	Tier StalenessTier
	Days int
}
