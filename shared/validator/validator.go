package validator

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"hotelledger/shared/constant"
	"hotelledger/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// PaymentMethods accepted on booking payments and daily credits.
var PaymentMethods = []string{"BKASH", "NAGAD", "BANK", "CASH"}

var validate = newValidate()

func isDay(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, value)

	return err == nil
}

func isPaymentMethod(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)

	return ok && slices.Contains(PaymentMethods, value)
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	custom := map[string]val.Func{
		"day":           isDay,
		"paymentmethod": isPaymentMethod,
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

// Validate decodes one JSON document from r into data and validates it. Both failures
// surface as validation failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(errors.Wrap(err, "failed to decode request body"))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}
