package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":      "{field} is required",
	"gte":           "{field} must be greater than or equal to {param}",
	"lte":           "{field} must be less than or equal to {param}",
	"gt":            "{field} must be greater than {param}",
	"oneof":         "{field} must be one of {param}",
	"email":         "{field} must be a valid email address",
	"uuid":          "{field} must be a valid UUID",
	"day":           "{field} must be a date formatted as YYYY-MM-DD",
	"paymentmethod": "{field} must be one of BKASH NAGAD BANK CASH",
}

// sizeMessages word min and max by what is being measured.
var sizeMessages = map[string]map[reflect.Kind]string{
	"max": {
		reflect.Slice:  "{field} must have at most {param} items",
		reflect.String: "{field} must be at most {param} characters long",
	},
	"min": {
		reflect.Slice:  "{field} must have at least {param} items",
		reflect.String: "{field} must be at least {param} characters long",
	},
}

var numericSize = map[string]string{
	"max": "{field} must be less than or equal to {param}",
	"min": "{field} must be greater than or equal to {param}",
}

// jsonName makes validation errors speak in request body names.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// fieldPath drops the root struct name from the namespace, leaving e.g. payments[0].method.
func fieldPath(fieldErr val.FieldError) string {
	_, path, found := strings.Cut(fieldErr.Namespace(), ".")
	if !found {
		return fieldErr.Field()
	}

	return path
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]

	if byKind, sized := sizeMessages[fieldErr.Tag()]; sized {
		template, ok = byKind[fieldErr.Kind()]
		if !ok {
			template, ok = numericSize[fieldErr.Tag()]
		}
	}

	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldPath(fieldErr), "{param}", fieldErr.Param()).Replace(template)
}

// message joins every field error so a client can fix a form in one round trip.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))
	for _, fieldErr := range valErrors {
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, "; ")
}
