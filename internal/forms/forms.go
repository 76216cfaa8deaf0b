// Package forms holds the shared validator instance. It stands in for the
// HTML form constraints the browser pages relied on: required contact fields
// at checkout, rating ranges on reviews, price/stock shapes on the admin
// product form.
package forms

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Loose phone check: optional +, separators allowed, 7-15 digits.
	Validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		matched, _ := regexp.MatchString(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`, phone)
		return matched
	})
}
