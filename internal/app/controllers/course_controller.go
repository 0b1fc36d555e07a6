package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/curso/internal/app/models/dto"
	"github.com/yigit/curso/internal/app/services"
	"github.com/yigit/curso/internal/middleware"
	"github.com/yigit/curso/internal/pkg/csrf"
	"github.com/yigit/curso/internal/pkg/validation"
	"github.com/yigit/curso/internal/web"
)

// CoursesPath is where the course list and form live
const CoursesPath = "/curso"

// CourseController serves the course list and registration form
type CourseController struct {
	courseService services.CourseService
	csrf          *csrf.Manager // nil disables CSRF protection
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, csrfManager *csrf.Manager, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		csrf:          csrfManager,
		logger:        logger,
	}
}

// ShowCourses renders the course list with an empty form
func (c *CourseController) ShowCourses(ctx *gin.Context) {
	c.render(ctx, dto.CourseForm{}, nil)
}

// CreateCourse handles a form submission.
// Success redirects back to the list so a refresh does not resubmit.
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var form dto.CourseForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Str("requestID", middleware.RequestID(ctx)).Msg("Malformed course form")
		c.render(ctx, form, validation.NewErrors().Add(validation.FieldForm, "The form could not be read."))
		return
	}

	if c.csrf != nil {
		if err := c.csrf.Verify(ctx.Request, form.CSRFToken); err != nil {
			c.logger.Warn().Err(err).Str("requestID", middleware.RequestID(ctx)).Msg("Rejected course form with bad CSRF token")
			c.render(ctx, form, validation.NewErrors().Add(validation.FieldCSRFToken, csrfMessage(err)))
			return
		}
	}

	_, err := c.courseService.RegisterCourse(ctx.Request.Context(), form)
	if err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			c.render(ctx, form, verrs)
			return
		}
		middleware.HandleError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, CoursesPath)
}

// render shows the list and form, echoing form values and errors back
func (c *CourseController) render(ctx *gin.Context, form dto.CourseForm, verrs *validation.Errors) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleError(ctx, err)
		return
	}

	page := dto.CoursePage{
		Title:     "Cursos",
		Courses:   courses,
		Form:      dto.CourseForm{Name: form.Name, Description: form.Description},
		Errors:    verrs,
		MaxLength: validation.DescriptionMaxLength,
	}

	if c.csrf != nil {
		token, err := c.csrf.Issue(ctx.Writer, ctx.Request)
		if err != nil {
			middleware.HandleError(ctx, err)
			return
		}
		page.CSRFToken = token
	}

	ctx.HTML(http.StatusOK, web.ViewCourses, page)
}

func csrfMessage(err error) string {
	switch {
	case errors.Is(err, csrf.ErrTokenExpired):
		return "The CSRF token has expired. Please submit the form again."
	case errors.Is(err, csrf.ErrTokenMissing):
		return "The CSRF token is missing."
	default:
		return "The CSRF token is invalid. Please submit the form again."
	}
}
