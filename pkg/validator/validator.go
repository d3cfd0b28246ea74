package validator

import (
	"reflect"
	"strings"
	"time"

	"see-a-doctor/internal/domain/slot"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name so clients can map errors back to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("clock", validateClock)
	v.RegisterValidation("isodate", validateISODate)
	v.RegisterValidation("weekday", validateWeekday)

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "clock":
				errors[field] = field + " must be a time in HH:MM format"
			case "isodate":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "weekday":
				errors[field] = field + " must be a weekday name"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := slot.ParseClock(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateWeekday(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == value {
			return true
		}
	}
	return false
}
