package store

const (
	// settings singleton

	ensureSettingsRow = `
		INSERT OR IGNORE INTO settings (id, teacher_name, school_name, privacy_pin, theme)
		VALUES (?, ?, ?, ?, ?);`

	getSettings = `
		SELECT
			id,
			teacher_name,
			school_name,
			privacy_pin,
			theme,
			last_backup_at
		FROM settings
		WHERE id = ?;`

	updateSettings = `
		UPDATE settings SET
			teacher_name   = ?,
			school_name    = ?,
			privacy_pin    = ?,
			theme          = ?,
			last_backup_at = ?
		WHERE id = ?;`

	stampLastBackupAt = `
		UPDATE settings SET last_backup_at = ? WHERE id = ?;`

	// students

	saveStudent = `
		INSERT INTO students (name, student_id, grade, class_type, iep_date, active)
		VALUES (?, ?, ?, ?, ?, ?);`

	getStudent = `
		SELECT id, name, student_id, grade, class_type, iep_date, active, created_at
		FROM students
		WHERE id = ?;`

	updateStudent = `
		UPDATE students SET
			name       = ?,
			student_id = ?,
			grade      = ?,
			class_type = ?,
			iep_date   = ?,
			active     = ?
		WHERE id = ?;`

	deleteStudent = `
		DELETE FROM students WHERE id = ?;`

	// goals

	saveGoal = `
		INSERT INTO goals (
			student_id,
			subject,
			description,
			active,
			mastery_enabled,
			mastery_score,
			mastery_count,
			frequency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getGoal = `
		SELECT
			id,
			student_id,
			subject,
			description,
			active,
			mastery_enabled,
			mastery_score,
			mastery_count,
			frequency,
			created_at
		FROM goals
		WHERE id = ?;`

	updateGoal = `
		UPDATE goals SET
			subject         = ?,
			description     = ?,
			active          = ?,
			mastery_enabled = ?,
			mastery_score   = ?,
			mastery_count   = ?,
			frequency       = ?
		WHERE id = ?;`

	deleteGoal = `
		DELETE FROM goals WHERE id = ?;`

	// logs

	saveLog = `
		INSERT INTO logs (
			goal_id,
			log_date,
			score,
			prompt_level,
			manipulatives_used,
			manipulatives_type,
			compliance,
			behavior,
			time_spent,
			notes,
			tester_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getLog = `
		SELECT
			id,
			goal_id,
			log_date,
			score,
			prompt_level,
			manipulatives_used,
			manipulatives_type,
			compliance,
			behavior,
			time_spent,
			notes,
			tester_name
		FROM logs
		WHERE id = ?;`

	updateLog = `
		UPDATE logs SET
			log_date           = ?,
			score              = ?,
			prompt_level       = ?,
			manipulatives_used = ?,
			manipulatives_type = ?,
			compliance         = ?,
			behavior           = ?,
			time_spent         = ?,
			notes              = ?,
			tester_name        = ?
		WHERE id = ?;`

	deleteLog = `
		DELETE FROM logs WHERE id = ?;`

	// custom goal templates

	saveCustomGoal = `
		INSERT INTO custom_goals (subject, text) VALUES (?, ?);`

	listCustomGoals = `
		SELECT id, subject, text FROM custom_goals ORDER BY id;`

	updateCustomGoal = `
		UPDATE custom_goals SET subject = ?, text = ? WHERE id = ?;`

	deleteCustomGoal = `
		DELETE FROM custom_goals WHERE id = ?;`

	// dashboard aggregates

	countActiveStudents = `
		SELECT COUNT(*) FROM students WHERE active = 1;`

	countActiveGoals = `
		SELECT COUNT(*)
		FROM goals g
		JOIN students s ON s.id = g.student_id
		WHERE g.active = 1 AND s.active = 1;`

	countRecentLogs = `
		SELECT COUNT(*) FROM logs WHERE log_date >= date(?, '-7 days');`

	selectRecentLogs = `
		SELECT l.id, l.log_date, l.score, g.subject, s.id, s.name
		FROM logs l
		JOIN goals g ON g.id = l.goal_id
		JOIN students s ON s.id = g.student_id
		ORDER BY l.id DESC
		LIMIT ?;`

	selectOverdueGoals = `
		SELECT
			g.id,
			g.subject,
			s.id,
			s.name,
			CAST(julianday(?) - julianday(COALESCE(MAX(l.log_date), g.created_at)) AS INTEGER) AS days_elapsed
		FROM goals g
		JOIN students s ON s.id = g.student_id
		LEFT JOIN logs l ON l.goal_id = g.id
		WHERE g.active = 1 AND s.active = 1
		GROUP BY g.id, g.subject, s.id, s.name, g.created_at
		ORDER BY days_elapsed DESC, g.id
		LIMIT ?;`

	// snapshot import: rows are reinserted with their original primary keys
	// so cross-references survive the restore without a remapping pass

	importSettingsRow = `
		INSERT INTO settings (id, teacher_name, school_name, privacy_pin, theme, last_backup_at)
		VALUES (?, ?, ?, ?, ?, ?);`

	importStudentRow = `
		INSERT INTO students (id, name, student_id, grade, class_type, iep_date, active)
		VALUES (?, ?, ?, ?, ?, ?, ?);`

	importGoalRow = `
		INSERT INTO goals (
			id,
			student_id,
			subject,
			description,
			active,
			mastery_enabled,
			mastery_score,
			mastery_count,
			frequency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	importLogRow = `
		INSERT INTO logs (
			id,
			goal_id,
			log_date,
			score,
			prompt_level,
			manipulatives_used,
			manipulatives_type,
			compliance,
			behavior,
			time_spent,
			notes,
			tester_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	importCustomGoalRow = `
		INSERT INTO custom_goals (id, subject, text) VALUES (?, ?, ?);`
)
