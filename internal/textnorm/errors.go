package textnorm

import "fmt"

// ResourceUnavailableError reports that a linguistic resource or model could not
// be initialised. Callers degrade instead of failing the request.
type ResourceUnavailableError struct {
	Resource string
	Cause    error
}

func (e *ResourceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resource unavailable: %s: %v", e.Resource, e.Cause)
	}
	return fmt.Sprintf("resource unavailable: %s", e.Resource)
}

func (e *ResourceUnavailableError) Unwrap() error {
	return e.Cause
}
