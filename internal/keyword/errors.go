package keyword

import (
	"fmt"
	"strings"
)

// UnknownRoleError indicates the job role has no weight vector.
type UnknownRoleError struct {
	Role  string
	Known []string
}

func (e *UnknownRoleError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown job role: %q", e.Role)
	}
	return fmt.Sprintf("unknown job role: %q (known roles: %s)", e.Role, strings.Join(e.Known, ", "))
}
