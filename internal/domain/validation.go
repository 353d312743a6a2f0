package domain

import "github.com/go-playground/validator/v10"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return ThemeMode(fl.Field().String()).Valid()
	})
	return v
}
