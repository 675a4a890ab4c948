package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// emailPart excludes Unicode separators and BOM as well as ASCII whitespace.
const emailPart = `[^\s\x0B\p{Z}\x{FEFF}@]+`

var basicEmail = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

func init() {
	validate = validator.New()

	// report json names so callers can key errors by form field
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("email_basic", func(fl validator.FieldLevel) bool {
		return basicEmail.MatchString(fl.Field().String())
	})
}

// Validate struct fields. Returns the first failing tag per field, nil when valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["_"] = err.Error()
		return errors
	}
	for _, err := range verrs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
