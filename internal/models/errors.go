package models

import "fmt"

// ValidationError reports locally recoverable bad input. It is raised before
// any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
