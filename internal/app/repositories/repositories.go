package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/curso/internal/app/models"
	"gorm.io/gorm"
)

// CourseRepository reads and inserts courses.
//
// ListAll returns every course in insertion order, never nil.
// Create fails with apperrors.ErrCourseAlreadyExists on a duplicate name.
// Any other store failure wraps apperrors.ErrStoreUnavailable.
type CourseRepository interface {
	ListAll(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, name, description string) (*models.Course, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository CourseRepository
}

// NewPostgresRepositories initializes all repositories on a PostgreSQL pool
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(db),
	}
}

// NewGormRepositories initializes all repositories on a GORM connection
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CourseRepository: NewGormCourseRepository(db),
	}
}
