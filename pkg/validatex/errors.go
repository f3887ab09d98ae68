package validatex

import (
	"maps"
	"slices"
	"strings"
)

// ArgumentValidationError reports every rule a payload violated.
type ArgumentValidationError struct {
	// Errors maps field name to violated rule code to message.
	Errors map[string]map[string]string
}

// Error implements the error interface, e.g.
// "argument validation failed: email(isEmail), password(length)".
func (e *ArgumentValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, field := range e.Fields() {
		codes := slices.Sorted(maps.Keys(e.Errors[field]))
		parts = append(parts, field+"("+strings.Join(codes, ",")+")")
	}
	return "argument validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the names of the fields with at least one violation, sorted.
func (e *ArgumentValidationError) Fields() []string {
	return slices.Sorted(maps.Keys(e.Errors))
}

// HasError reports whether field has a violation. With an empty code any
// violation on the field matches, otherwise only the named rule does.
func (e *ArgumentValidationError) HasError(field, code string) bool {
	codes, ok := e.Errors[field]
	if !ok {
		return false
	}
	if code == "" {
		return true
	}
	_, ok = codes[code]
	return ok
}

// Message returns the message recorded for field and code, if any.
func (e *ArgumentValidationError) Message(field, code string) (string, bool) {
	msg, ok := e.Errors[field][code]
	return msg, ok
}
