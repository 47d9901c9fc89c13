package ranking

import (
	"errors"
	"fmt"
)

// ErrEmptyJobDescription is returned when a batch has no job description text.
var ErrEmptyJobDescription = errors.New("job description is empty")

// ItemError is a failure confined to one resume. The batch skips the resume.
type ItemError struct {
	ResumeID string
	Err      error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("resume %q: %v", e.ResumeID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
