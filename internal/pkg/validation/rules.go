package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// UsernamePattern allows Unicode letters and digits plus @/./+/-/_
	UsernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// Validator validates request structs and reports field-level problems
// keyed by the field's JSON name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the portal's custom rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return UsernamePattern.MatchString(fl.Field().String())
	})

	// max counts runes; bcrypt limits bytes
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})

	return &Validator{validate: v}
}

// Struct validates obj. It returns nil or a *apperrors.ValidationError.
func (v *Validator) Struct(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), Message(fe))
	}
	return verr
}

// Message renders a human-readable message for a failed rule
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "bcryptlen":
		return "Ensure this field has no more than " + strconv.Itoa(MaxPasswordBytes) + " bytes."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Invalid value (" + fe.Tag() + ")."
	}
}
