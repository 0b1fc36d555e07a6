package dto

import (
	"github.com/yigit/curso/internal/app/models"
	"github.com/yigit/curso/internal/pkg/validation"
)

// CourseForm is the course submission as posted by the browser
type CourseForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	CSRFToken   string `form:"csrf_token"`
}

// CoursePage is the view model of the course list + form page
type CoursePage struct {
	Title     string
	Courses   []*models.Course
	Form      CourseForm
	Errors    *validation.Errors
	CSRFToken string
	MaxLength int
}

// FieldErrors returns the messages for one form field
func (p CoursePage) FieldErrors(field string) []string {
	return p.Errors.Get(field)
}

// StaticPage is the view model of the landing, static and error pages
type StaticPage struct {
	Title     string
	Status    int
	Message   string
	RequestID string
}
