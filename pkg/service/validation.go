package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
)

// dateLayout is the wire format of calendar days in requests
const dateLayout = "2006-01-02"

// NewValidator returns a validator that knows the "clock" tag (HH:mm) and
// reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return scheduler.ValidClock(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns validator output into a user facing ValidationError
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "es obligatorio"
	case "clock":
		msg = "debe tener formato HH:mm"
	case "datetime":
		msg = "debe tener formato AAAA-MM-DD"
	case "min", "max":
		msg = "valor fuera de rango"
	case "email":
		msg = "no es un email válido"
	default:
		msg = "no es válido"
	}
	return apperrors.NewValidationError(fe.Field(), msg)
}

// parseDay reads a YYYY-MM-DD date as midnight in loc
func parseDay(field, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "debe tener formato AAAA-MM-DD")
	}
	return t, nil
}

// checkRange enforces start < end on two already validated clocks
func checkRange(start, end string) error {
	s, err := scheduler.ParseClock(start)
	if err != nil {
		return apperrors.NewValidationError("start_time", "debe tener formato HH:mm")
	}
	e, err := scheduler.ParseClock(end)
	if err != nil {
		return apperrors.NewValidationError("end_time", "debe tener formato HH:mm")
	}
	if s >= e {
		return apperrors.ErrInvalidTimeRange
	}
	return nil
}
