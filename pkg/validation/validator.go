package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"ducktodo/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Struct tags registered on top of the go-playground defaults.
const (
	TagNotBlank  = "notblank"
	TagEmail     = "email_addr"
	TagPhone     = "phone11"
	TagPassword  = "password8"
	TagHexColor  = "hex6"
	TagLocalDate = "localdate"
	TagMinLen    = "tmin"
	TagMaxLen    = "tmax"
	TagEnum      = "enum"
)

// Validator runs struct-tag validation backed by the predicates of this package.
type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger

	mu    sync.RWMutex
	enums map[string]Enum
}

func NewValidator(log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Discard()
	}

	v := &Validator{
		validate: validator.New(),
		logger:   log,
		enums:    make(map[string]Enum),
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		TagNotBlank:  func(fl validator.FieldLevel) bool { return IsNonEmpty(fl.Field().Interface()) },
		TagEmail:     func(fl validator.FieldLevel) bool { return IsValidEmail(Stringify(fl.Field().Interface())) },
		TagPhone:     func(fl validator.FieldLevel) bool { return IsValidPhone(fl.Field().Interface()) },
		TagPassword:  func(fl validator.FieldLevel) bool { return IsValidPassword(Stringify(fl.Field().Interface())) },
		TagHexColor:  func(fl validator.FieldLevel) bool { return IsHexColor(Stringify(fl.Field().Interface())) },
		TagLocalDate: validateLocalDate,
		TagMinLen:    validateMinLen,
		TagMaxLen:    validateMaxLen,
		TagEnum:      v.validateEnum,
	}
	for tag, fn := range rules {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validation rule",
				"tag", tag,
				"error", err,
			)
		}
	}

	return v
}

// RegisterEnum makes enum available to the `enum=<name>` tag.
func (v *Validator) RegisterEnum(name string, enum Enum) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enums[name] = enum
}

// Struct validates s and returns ValidationErrors describing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return v.translateValidationErrors(validationErrs)
	}
	return err
}

func (v *Validator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	v.logger.Debug("Request validation failed", "errors", result.Error())
	return result
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", TagNotBlank:
		return fmt.Sprintf("%s is required", field)
	case TagMinLen:
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case TagMaxLen:
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case TagEmail:
		return fmt.Sprintf("%s is not a valid email address", field)
	case TagPhone:
		return fmt.Sprintf("%s must be an 11-digit phone number", field)
	case TagPassword:
		return fmt.Sprintf("%s must be at least 8 characters and contain a letter", field)
	case TagHexColor:
		return fmt.Sprintf("%s must be a color in #xxxxxx form", field)
	case TagLocalDate:
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	case TagEnum:
		return fmt.Sprintf("%s has an invalid value: %v", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s' validation", field, fe.Tag())
	}
}

func validateLocalDate(fl validator.FieldLevel) bool {
	_, ok := NormalizeLocalDate(fl.Field().Interface())
	return ok
}

func validateMinLen(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return IsMinLength(fl.Field().Interface(), n)
}

func validateMaxLen(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return IsMaxLength(fl.Field().Interface(), n)
}

func (v *Validator) validateEnum(fl validator.FieldLevel) bool {
	v.mu.RLock()
	enum, ok := v.enums[fl.Param()]
	v.mu.RUnlock()
	if !ok {
		v.logger.Error("Unknown enum referenced by validation tag", "enum", fl.Param())
		return false
	}
	return InMapKeys(enum, fl.Field().Interface())
}
