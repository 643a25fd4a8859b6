package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"househunters/internal/domain"
	"househunters/listing"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the project's custom rules.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Money validates as its minor amount; an unparsable amount reads as missing.
		v.RegisterCustomTypeFunc(func(f reflect.Value) any {
			m, ok := f.Interface().(listing.Money)
			if !ok || !m.Valid() {
				return nil
			}
			return m.Minor()
		}, listing.Money{})
		_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return PasswordStrong(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// PasswordStrong requires at least one upper case letter, one lower case
// letter and one digit.
func PasswordStrong(pw string) bool {
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// validateInput runs struct validation and reports the first failure as a
// domain.ValidationError.
func validateInput(in any) error {
	err := Validator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ValidationError{Msg: err.Error(), Err: err}
	}
	fe := verrs[0]
	return domain.ValidationError{Field: fe.Field(), Msg: describe(fe), Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "strongpassword":
		return "must contain an upper case letter, a lower case letter and a digit"
	}
	return "is invalid"
}
