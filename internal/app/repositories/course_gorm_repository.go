package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/dberrors"
	"github.com/yigit/curso/internal/pkg/logger"
	"gorm.io/gorm"
)

// GormCourseRepository handles course database operations through GORM.
// It backs the single-file SQLite store.
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// ListAll retrieves all courses in insertion order
func (r *GormCourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, fmt.Errorf("%w: listing courses: %w", apperrors.ErrStoreUnavailable, err)
	}
	return courses, nil
}

// Create inserts a new course
func (r *GormCourseRepository) Create(ctx context.Context, name, description string) (*models.Course, error) {
	course := &models.Course{Name: name, Description: description}
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		if dberrors.IsSQLiteUniqueViolation(err) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", name).Msg("Error creating course")
		return nil, fmt.Errorf("%w: creating course: %w", apperrors.ErrStoreUnavailable, err)
	}
	return course, nil
}
