package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/docthru/backend/pkg/errorx"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	return v
}

// Validate checks the validate tags of req and reports the first failing
// field by its json name.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return errorx.New(errorx.BadRequest, "Invalid request")
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return errorx.New(errorx.BadRequest, "Require %s", fe.Field())
	case "min":
		return errorx.New(errorx.BadRequest, "Field %s must be at least %s", fe.Field(), fe.Param())
	case "url":
		return errorx.New(errorx.BadRequest, "Field %s must be a valid url", fe.Field())
	default:
		return errorx.New(errorx.BadRequest, "Invalid %s", fe.Field())
	}
}
