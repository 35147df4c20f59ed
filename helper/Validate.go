package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("lnglat", validLngLat)
	return v
}

// validLngLat accepts a [longitude, latitude] pair inside the WGS84 bounds.
func validLngLat(fl validator.FieldLevel) bool {
	f := fl.Field()
	if (f.Kind() != reflect.Array && f.Kind() != reflect.Slice) || f.Len() != 2 {
		return false
	}
	lng, lat := f.Index(0).Float(), f.Index(1).Float()
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// ValidateStruct runs the `validate` tags of v and folds any failure into a 400.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return BadRequest(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return &AppError{Status: 400, Message: strings.Join(msgs, "; "), Err: err}
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	case "lnglat":
		return fmt.Sprintf("%s must be [longitude, latitude] within [-180, 180] and [-90, 90]", field)
	case "gtefield":
		return fmt.Sprintf("%s must not be lower than %s", field, lowerFirst(fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
