// Package service provides business logic for the application.
package service

import "fmt"

// NotFoundError reports that a referenced or requested entity does not
// exist. Handlers translate it to a 404; it is never a storage failure.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func notFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
