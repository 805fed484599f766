// Package validator checks console form input with go-playground/validator.
// Fields carry an `alert` tag holding the text shown when the field is rejected.
package validator

import (
	"errors"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if alert := fld.Tag.Get("alert"); alert != "" {
				return alert
			}
			return fld.Name
		})
		validate = v
	})
	return validate
}

// Violation returns the alert text of the first rejected field in declaration
// order, or an empty string when the input is valid.
func Violation(input any) string {
	err := Get().Struct(input)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return err.Error()
}
