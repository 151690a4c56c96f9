package middleware

import (
	"reflect"
	"strings"

	"github.com/eyrie/backend/internal/domain/client"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the binding validator: JSON tag names in
// error details and the custom membership tag for EA-<n> numbers.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("membership", func(fl validator.FieldLevel) bool {
		_, err := client.ParseMembershipNumber(fl.Field().String())
		return err == nil
	})
}
