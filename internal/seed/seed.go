package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/curso/internal/app/repositories"
	"github.com/yigit/curso/internal/pkg/apperrors"
)

// DefaultCourse is a course registered on a fresh store when seeding is enabled
type DefaultCourse struct {
	Name        string
	Description string
}

// DefaultCourses are the sample courses for demo and development stores
var DefaultCourses = []DefaultCourse{
	{Name: "Algoritmos", Description: "Estruturas de dados, complexidade e técnicas de projeto de algoritmos."},
	{Name: "Banco de Dados", Description: "Modelagem relacional, SQL e transações."},
	{Name: "Programação Web", Description: "HTTP, HTML e desenvolvimento de aplicações web do lado do servidor."},
}

// CreateDefaultCourses registers each course that does not exist yet.
// Existing names are skipped, so it is safe to run on every start.
// Other failures are collected and returned together.
func CreateDefaultCourses(ctx context.Context, repo appRepos.CourseRepository, courses []DefaultCourse, lgr zerolog.Logger) error {
	lgr.Info().Int("count", len(courses)).Msg("Checking/Creating default courses...")
	var finalErr error

	created := 0
	for _, c := range courses {
		course, err := repo.Create(ctx, c.Name, c.Description)
		switch {
		case errors.Is(err, apperrors.ErrCourseAlreadyExists):
			lgr.Debug().Str("name", c.Name).Msg("Course already exists, skipping creation")
		case err != nil:
			lgr.Error().Err(err).Str("name", c.Name).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		default:
			created++
			lgr.Debug().Int64("courseID", course.ID).Str("name", course.Name).Msg("Default course created")
		}
	}

	lgr.Info().Int("created", created).Msg("Default course check/creation finished.")
	return finalErr
}
