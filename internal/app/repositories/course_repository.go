package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/dberrors"
	"github.com/yigit/curso/internal/pkg/logger"
)

// CourseNameConstraint is the unique index on courses.name
const CourseNameConstraint = "ix_courses_name"

var courseColumns = []string{"id", "name", "description", "created_at"}

// PostgresCourseRepository handles course database operations on PostgreSQL
type PostgresCourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new PostgresCourseRepository
func NewCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func buildListCoursesQuery(sb squirrel.StatementBuilderType) (string, []interface{}, error) {
	return sb.Select(courseColumns...).
		From("courses").
		OrderBy("id ASC").
		ToSql()
}

func buildCreateCourseQuery(sb squirrel.StatementBuilderType, name, description string) (string, []interface{}, error) {
	return sb.Insert("courses").
		Columns("name", "description").
		Values(name, description).
		Suffix("RETURNING id, created_at").
		ToSql()
}

// ListAll retrieves all courses in insertion order
func (r *PostgresCourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := buildListCoursesQuery(r.sb)
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("%w: querying courses: %w", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.Description, &course.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("%w: scanning course row: %w", apperrors.ErrStoreUnavailable, err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("%w: iterating course rows: %w", apperrors.ErrStoreUnavailable, err)
	}

	return courses, nil
}

// Create inserts a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, name, description string) (*models.Course, error) {
	sql, args, err := buildCreateCourseQuery(r.sb, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	course := &models.Course{Name: name, Description: description}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, CourseNameConstraint) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", name).Msg("Error executing create course query")
		return nil, fmt.Errorf("%w: creating course: %w", apperrors.ErrStoreUnavailable, err)
	}

	return course, nil
}
