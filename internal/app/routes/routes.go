package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curso/internal/app/controllers"
	"github.com/yigit/curso/internal/middleware"
)

// SubmissionLimit bounds course form submissions per client
type SubmissionLimit struct {
	Limiter *middleware.RateLimiter // nil disables limiting
	Max     int
	Window  time.Duration
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pageController *controllers.PageController,
	courseController *controllers.CourseController,
	limit SubmissionLimit,
) {
	// Landing page accepts both verbs; neither changes state
	router.GET("/", pageController.Index)
	router.POST("/", pageController.Index)

	courses := router.Group(controllers.CoursesPath)
	{
		courses.GET("", courseController.ShowCourses)
		if limit.Limiter != nil {
			courses.POST("", limit.Limiter.Limit("course_submit", limit.Max, limit.Window), courseController.CreateCourse)
		} else {
			courses.POST("", courseController.CreateCourse)
		}
	}

	router.GET("/indisponivel", pageController.Unavailable)

	router.NoRoute(middleware.NotFound())
}
