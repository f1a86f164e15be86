// Package validation builds the validator instance shared by the HTTP
// handlers, with the domain's custom rules registered.
package validation

import "github.com/go-playground/validator/v10"

// New returns a validator with a `region` rule backed by the given
// region-code check. Empty values pass; pair the tag with omitempty
// semantics handled by the caller's required rules.
func New(isRegion func(string) bool) *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		return code == "" || isRegion(code)
	})

	return v
}
