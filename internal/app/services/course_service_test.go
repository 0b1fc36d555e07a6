package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/app/models/dto"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/validation"
)

// fakeCourseRepository keeps courses in memory and enforces unique names
type fakeCourseRepository struct {
	courses   []*models.Course
	creates   int
	listErr   error
	createErr error
}

func (r *fakeCourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Course, len(r.courses))
	copy(out, r.courses)
	return out, nil
}

func (r *fakeCourseRepository) Create(ctx context.Context, name, description string) (*models.Course, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
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

func newService(repo *fakeCourseRepository) CourseService {
	return NewCourseService(repo, zerolog.Nop())
}

func TestRegisterCourse_Valid(t *testing.T) {
	repo := &fakeCourseRepository{}
	svc := newService(repo)

	course, err := svc.RegisterCourse(context.Background(), dto.CourseForm{Name: "Algorithms", Description: "Intro to algorithms"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.ID)

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algorithms", courses[0].Name)
}

func TestRegisterCourse_InvalidNeverPersists(t *testing.T) {
	tests := []struct {
		name  string
		form  dto.CourseForm
		field string
	}{
		{"empty name", dto.CourseForm{Name: "", Description: "desc"}, validation.FieldName},
		{"blank name", dto.CourseForm{Name: "  ", Description: "desc"}, validation.FieldName},
		{"missing description", dto.CourseForm{Name: "Algorithms"}, validation.FieldDescription},
		{"long description", dto.CourseForm{Name: "Algorithms", Description: strings.Repeat("a", 251)}, validation.FieldDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeCourseRepository{}
			svc := newService(repo)

			_, err := svc.RegisterCourse(context.Background(), tt.form)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

			verrs, ok := validation.AsErrors(err)
			require.True(t, ok)
			assert.NotEmpty(t, verrs.Get(tt.field))

			assert.Zero(t, repo.creates)
			assert.Empty(t, repo.courses)
		})
	}
}

func TestRegisterCourse_DuplicateName(t *testing.T) {
	repo := &fakeCourseRepository{}
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.RegisterCourse(ctx, dto.CourseForm{Name: "Algorithms", Description: "first"})
	require.NoError(t, err)

	_, err = svc.RegisterCourse(ctx, dto.CourseForm{Name: "Algorithms", Description: "second"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{DuplicateNameMessage}, verrs.Get(validation.FieldName))
	assert.Len(t, repo.courses, 1)
}

func TestRegisterCourse_StoreUnavailablePropagates(t *testing.T) {
	repo := &fakeCourseRepository{createErr: errors.Join(apperrors.ErrStoreUnavailable, errors.New("disk full"))}
	svc := newService(repo)

	_, err := svc.RegisterCourse(context.Background(), dto.CourseForm{Name: "Algorithms", Description: "desc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)

	_, isValidation := validation.AsErrors(err)
	assert.False(t, isValidation)
}

func TestListCourses_Error(t *testing.T) {
	svc := newService(&fakeCourseRepository{listErr: apperrors.ErrStoreUnavailable})

	_, err := svc.ListCourses(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}
