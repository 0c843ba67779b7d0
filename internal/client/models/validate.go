package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const passwordSpecials = "!@#$%^&*-"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("password", isPassword); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// isPassword requires at least 9 characters, a digit and one of !@#$%^&*-.
func isPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len([]rune(s)) < 9 {
		return false
	}
	return strings.IndexFunc(s, unicode.IsDigit) >= 0 && strings.ContainsAny(s, passwordSpecials)
}

// ValidateCard checks the writable fields of a card.
func ValidateCard(in CardInput) error {
	c := Card{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Phone:       in.Phone,
		Email:       in.Email,
		Web:         in.Web,
		Image:       in.Image,
		Address:     in.Address,
	}
	return toValidationError(validatorInstance().Struct(&c), &ValidationError{})
}

// ValidateRegistration checks a sign-up form; the password is mandatory.
func ValidateRegistration(u *User) error {
	ve := &ValidationError{}
	if u.Password == "" {
		ve.add("password", "is required")
	}
	return toValidationError(validatorInstance().Struct(u), ve)
}

// ValidateProfile checks the fields a user may edit on their profile.
func ValidateProfile(p ProfileUpdate) error {
	return toValidationError(validatorInstance().Struct(&p), &ValidationError{})
}

// ValidateCredentials checks a login form.
func ValidateCredentials(email, password string) error {
	ve := &ValidationError{}
	v := validatorInstance()
	var verrs validator.ValidationErrors
	if err := v.Var(email, "required,email"); errors.As(err, &verrs) {
		ve.add("email", messageFor(verrs[0]))
	}
	if password == "" {
		ve.add("password", "is required")
	}
	return ve.orNil()
}

func toValidationError(err error, ve *ValidationError) error {
	if err == nil {
		return ve.orNil()
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		ve.add(fieldPath(fe.Namespace()), messageFor(fe))
	}
	return ve.orNil()
}

// fieldPath drops the root struct name: "Card.address.city" -> "address.city".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	numeric := fe.Kind() == reflect.Int
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if numeric {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("cannot exceed %s", fe.Param())
		}
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "invalid email format"
	case "url":
		return "invalid URL"
	case "password":
		return "must be at least 9 characters with a number and one of " + passwordSpecials
	default:
		return "is invalid"
	}
}
