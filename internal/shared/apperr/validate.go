package apperr

import "strings"

// Field is a named text input.
type Field struct {
	Name  string
	Value string
}

// RequireText returns a bad-request error naming the first field that is empty or blank.
func RequireText(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return BadRequest(f.Name + " is required")
		}
	}
	return nil
}
