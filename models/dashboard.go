package models

// DashboardSummary is the aggregate consumed by the home screen: active
// entity counts, recent logging volume, and the latest log entries joined
// with their goal and student.
type DashboardSummary struct {
	ActiveStudents int
	ActiveGoals    int
	LogsLast7Days  int
	RecentLogs     []RecentLog
}

// RecentLog is one row of the dashboard's recent-activity list.
type RecentLog struct {
	LogID       int64
	LogDate     string
	Score       string
	GoalSubject string
	StudentID   int64
	StudentName string
}

// OverdueGoal is one row of the overdue-goal report: an active goal ranked by
// how many days have passed since it was last logged (or since it was created
// when it has no logs at all).
type OverdueGoal struct {
	GoalID      int64
	Subject     string
	StudentID   int64
	StudentName string
	DaysElapsed int
}
