package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/pkg/apperrors"
)

type memoryCourseRepository struct {
	courses []*models.Course
	failOn  string
}

func (r *memoryCourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	return r.courses, nil
}

func (r *memoryCourseRepository) Create(ctx context.Context, name, description string) (*models.Course, error) {
	if name == r.failOn {
		return nil, fmt.Errorf("%w: disk full", apperrors.ErrStoreUnavailable)
	}
	for _, c := range r.courses {
		if c.Name == name {
			return nil, apperrors.ErrCourseAlreadyExists
		}
	}
	course := &models.Course{ID: int64(len(r.courses) + 1), Name: name, Description: description}
	r.courses = append(r.courses, course)
	return course, nil
}

func TestCreateDefaultCourses_Idempotent(t *testing.T) {
	repo := &memoryCourseRepository{}

	require.NoError(t, CreateDefaultCourses(context.Background(), repo, DefaultCourses, zerolog.Nop()))
	require.NoError(t, CreateDefaultCourses(context.Background(), repo, DefaultCourses, zerolog.Nop()))

	require.Len(t, repo.courses, len(DefaultCourses))
	for i, c := range DefaultCourses {
		assert.Equal(t, c.Name, repo.courses[i].Name)
	}
}

func TestCreateDefaultCourses_CollectsFailures(t *testing.T) {
	repo := &memoryCourseRepository{failOn: DefaultCourses[0].Name}

	err := CreateDefaultCourses(context.Background(), repo, DefaultCourses, zerolog.Nop())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStoreUnavailable))
	assert.Len(t, repo.courses, len(DefaultCourses)-1)
}

func TestDefaultCourses_FitDescriptionLimit(t *testing.T) {
	for _, c := range DefaultCourses {
		assert.NotEmpty(t, c.Name)
		assert.LessOrEqual(t, len([]rune(c.Description)), 250, c.Name)
	}
}
