package rules

import "fmt"

// ValidationError reports a schema-level problem with a rule file, such as
// an unsupported version or an empty rule list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// RuleError reports a problem with one rule (missing field, duplicate id,
// invalid regex).
type RuleError struct {
	Index   int    // 0-based index of the rule in the file
	ID      string // rule ID, may be empty when the ID itself is missing
	Field   string
	Message string
	Cause   error
}

func (e *RuleError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("rule %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("rule[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap enables errors.Is and errors.As against the underlying cause.
func (e *RuleError) Unwrap() error {
	return e.Cause
}
