package apperrors

import "errors"

// Common errors
var (
	// ErrResourceNotFound is returned for unknown routes and missing records
	ErrResourceNotFound = errors.New("resource not found")

	// ErrValidationFailed marks submitted input that failed validation
	ErrValidationFailed = errors.New("validation failed")

	// ErrStoreUnavailable wraps any failure of the underlying data store
	ErrStoreUnavailable = errors.New("data store unavailable")

	// ErrTooManyRequests is returned when a client exceeds the submission rate
	ErrTooManyRequests = errors.New("too many requests")
)

// Course errors
var (
	// ErrCourseAlreadyExists is the store-level unique constraint on course names
	ErrCourseAlreadyExists = errors.New("course with this name already exists")
)

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
