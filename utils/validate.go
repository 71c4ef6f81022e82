package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct and field validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return Validator().Var(s, "required,email") == nil
}
