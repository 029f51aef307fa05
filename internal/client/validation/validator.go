// Package validation holds the field rules for the client, service and
// appointment forms. Each field rule returns the message to show next to the
// field, or "" when the value is acceptable; the same rules gate submission.
package validation

import "fmt"

// ValidationError is a failed rule for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator collects field errors in the order they were checked.
type Validator struct {
	errors []ValidationError
}

func NewValidator() *Validator {
	return &Validator{errors: make([]ValidationError, 0)}
}

// Check records message against field unless message is empty. It is meant
// to be chained with the field rules:
//
//	v.Check("nombre", ClientName(c.Name)).Check("email", ClientEmail(c.Email))
func (v *Validator) Check(field, message string) *Validator {
	if message != "" {
		v.errors = append(v.errors, ValidationError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Fields maps each failing field to its first message.
func (v *Validator) Fields() map[string]string {
	out := make(map[string]string, len(v.errors))
	for _, e := range v.errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// FirstError returns the first error message or "" if there is none.
func (v *Validator) FirstError() string {
	if len(v.errors) > 0 {
		return v.errors[0].Error()
	}
	return ""
}

// Err returns the first ValidationError, or nil.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return v.errors[0]
}
