// Package validator exposes request validation as an injectable dependency
// so handlers can be tested without touching package-level state.
package validator

import "github.com/go-playground/validator/v10"

// Validator checks struct fields against `validate` tags.
type Validator struct {
	check *validator.Validate
}

func New() *Validator {
	return &Validator{check: validator.New()}
}

// Struct runs tag validation on s and returns the first failure set.
func (v *Validator) Struct(s any) error {
	return v.check.Struct(s)
}

// Var validates a single value against a tag expression.
func (v *Validator) Var(value any, tag string) error {
	return v.check.Var(value, tag)
}
