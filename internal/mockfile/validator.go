// Package mockfile provides mock definition validation functionality.
package mockfile

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the result of definition validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

var validMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

var validGenerators = map[string]bool{
	"uuid":      true,
	"timestamp": true,
	"lorem":     true,
	"counter":   true,
}

// Validate validates a mock definition.
func Validate(def *Definition) ValidationResult {
	result := ValidationResult{Valid: true}

	if len(def.Routes) == 0 {
		result.addError("routes", "at least one route is required")
	}

	if def.Delay != "" {
		if _, err := time.ParseDuration(def.Delay); err != nil {
			result.addError("delay", fmt.Sprintf("invalid duration: %s", def.Delay))
		}
	}

	if def.Auth != nil && def.Auth.Token == "" {
		result.addError("auth.token", "token is required when auth is set")
	}

	for i, route := range def.Routes {
		field := func(name string) string { return fmt.Sprintf("routes[%d].%s", i, name) }

		if route.Crud != "" {
			if route.Method != "" || route.Path != "" {
				result.addError(field("crud"), "crud is mutually exclusive with method/path")
			}
		} else {
			method := strings.ToUpper(route.Method)
			if !validMethods[method] {
				result.addError(field("method"), fmt.Sprintf("invalid method: %s", route.Method))
			}
			if route.Path == "" {
				result.addError(field("path"), "path is required")
			} else if !strings.HasPrefix(route.Path, "/") {
				result.addError(field("path"), "path must start with /")
			}
			if route.MaxResults > 0 && method != "GET" {
				result.addError(field("max_results"), "max_results is only valid on GET routes")
			}
		}

		if route.Body != nil && len(route.Generate) > 0 {
			result.addError(field("body"), "body and generate are mutually exclusive")
		}

		for name, gen := range route.Generate {
			if !validGenerators[gen] {
				result.addError(field("generate."+name), fmt.Sprintf("unknown generator: %s", gen))
			}
		}

		if route.Delay != "" {
			if _, err := time.ParseDuration(route.Delay); err != nil {
				result.addError(field("delay"), fmt.Sprintf("invalid duration: %s", route.Delay))
			}
		}
	}

	return result
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Error joins all validation errors into a single error value, or nil when
// the result is valid.
func (r ValidationResult) Error() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("invalid mock definition: %s", strings.Join(msgs, "; "))
}
