package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/app/models/dto"
	"github.com/yigit/curso/internal/app/repositories"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/validation"
)

// DuplicateNameMessage is shown next to the name field when the name is taken
const DuplicateNameMessage = "A course with this name already exists."

// CourseService defines the course registration workflow
type CourseService interface {
	// ListCourses returns every registered course in insertion order
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// RegisterCourse validates the form and persists the course.
	// Invalid input and duplicate names return *validation.Errors.
	RegisterCourse(ctx context.Context, form dto.CourseForm) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// RegisterCourse creates a course from a submitted form
func (s *courseServiceImpl) RegisterCourse(ctx context.Context, form dto.CourseForm) (*models.Course, error) {
	input, err := validation.ValidateCourseForm(form.Name, form.Description)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.Create(ctx, input.Name, input.Description)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			s.logger.Info().Str("name", input.Name).Msg("Rejected duplicate course name")
			return nil, validation.NewErrors().
				Add(validation.FieldName, DuplicateNameMessage).
				WithCause(apperrors.ErrCourseAlreadyExists)
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course registered")
	return course, nil
}
