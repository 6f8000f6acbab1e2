package domain

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// EarliestReleaseDate is the date of the first film screening; no film may
// be released before it.
var EarliestReleaseDate = NewDate(1895, time.December, 28)

// NewValidator builds a validator instance with the domain rules
// registered: "releasedate" (not before 1895-12-28), "notfuture"
// (not after today) and "login" (no whitespace characters).
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})

	_ = v.RegisterValidation("releasedate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.Before(EarliestReleaseDate.Time)
	})

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now())
	})

	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsSpace) < 0
	})

	return v
}
