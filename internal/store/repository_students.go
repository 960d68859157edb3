package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/progress-keeper/progress-keeper/internal/logger"
	"github.com/progress-keeper/progress-keeper/models"
)

// studentRepository is the SQLite-backed implementation of
// [StudentRepository]. Deleting a student cascades to its goals and logs via
// the schema's foreign keys; no orphan rows survive a delete.
type studentRepository struct {
	*DB
	logger *logger.Logger
}

// NewStudentRepository constructs a [StudentRepository] backed by the
// provided database connection and logger.
func NewStudentRepository(db *DB, logger *logger.Logger) StudentRepository {
	return &studentRepository{
		DB:     db,
		logger: logger,
	}
}

// Create inserts a new student and writes the generated id back into student.ID.
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, saveStudent,
		student.Name,
		student.StudentID,
		student.Grade,
		student.ClassType,
		student.IEPDate,
		student.Active,
	)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Create").
			Str("name", student.Name).
			Msg("failed to insert student")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	student.ID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Create").
			Msg("failed to get generated student id")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the student with the given id.
func (r *studentRepository) Get(ctx context.Context, id int64) (models.Student, error) {
	log := logger.FromContext(ctx)

	var s models.Student
	err := r.DB.QueryRowContext(ctx, getStudent, id).Scan(
		&s.ID,
		&s.Name,
		&s.StudentID,
		&s.Grade,
		&s.ClassType,
		&s.IEPDate,
		&s.Active,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrStudentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Get").
			Int64("student_id", id).
			Msg("failed to query student")
		return models.Student{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s, nil
}

// List returns students ordered by name. By default only active students are
// returned; includeInactive widens the result to archived ones as well.
func (r *studentRepository) List(ctx context.Context, includeInactive bool) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "name", "student_id", "grade", "class_type", "iep_date", "active", "created_at").
		From("students").
		OrderBy("name", "id")
	if !includeInactive {
		builder = builder.Where(sq.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.List").
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.List").
			Bool("include_inactive", includeInactive).
			Msg("failed to execute student list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	students := make([]models.Student, 0, 16)

	for rows.Next() {
		var s models.Student
		scanErr := rows.Scan(
			&s.ID,
			&s.Name,
			&s.StudentID,
			&s.Grade,
			&s.ClassType,
			&s.IEPDate,
			&s.Active,
			&s.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "studentRepository.List").
				Msg("failed to scan student row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		students = append(students, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "studentRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return students, nil
}

// Update overwrites the mutable fields of the student with the given id.
func (r *studentRepository) Update(ctx context.Context, student models.Student) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateStudent,
		student.Name,
		student.StudentID,
		student.Grade,
		student.ClassType,
		student.IEPDate,
		student.Active,
		student.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Update").
			Int64("student_id", student.ID).
			Msg("failed to update student")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrStudentNotFound)
}

// Delete removes the student with the given id. The student's goals and all
// logs under those goals are removed by the cascade.
func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteStudent, id)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Delete").
			Int64("student_id", id).
			Msg("failed to delete student")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireRowsAffected(result, ErrStudentNotFound)
}

// requireRowsAffected maps a zero-rows-affected DML result to the provided
// not-found sentinel.
func requireRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
