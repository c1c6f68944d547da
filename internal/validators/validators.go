package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/zhotheone/nailapp/internal/domain/schedule"
	"github.com/zhotheone/nailapp/internal/httperr"
)

var phone = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

var registerOnce sync.Once

// Register installs the custom rules on gin's validator. Safe to call more
// than once; tests and main both call it.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("hhmm", HHMM)
		_ = v.RegisterValidation("phone", Phone)
	})
}

// HHMM accepts strict 24-hour "HH:MM" strings.
func HHMM(fl validator.FieldLevel) bool {
	return schedule.IsHHMM(fl.Field().String())
}

func Phone(fl validator.FieldLevel) bool {
	return phone.MatchString(strings.TrimSpace(fl.Field().String()))
}

func jsonName(f reflect.StructField) string {
	name := strings.Split(f.Tag.Get("json"), ",")[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// BindError turns a gin binding failure into a ValidationError whose message
// names the first offending field.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return httperr.ErrValidation("invalid_body", "Invalid request body")
	}

	fe := verrs[0]
	return httperr.ErrValidation("invalid_"+fe.Field(), fe.Field()+" "+message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "phone":
		return "must be a phone number"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "is invalid"
	}
}
