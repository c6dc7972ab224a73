package validator

import (
	"reflect"
	"regexp"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/go-playground/validator/v10"
)

var bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Custom validators
	v.RegisterValidation("blood_type", validateBloodType)
	v.RegisterValidation("time_of_day", validateTimeOfDay)

	// Closed-set validators backed by the model enumerations.
	v.RegisterValidation("document_category", oneOf(model.DocumentCategories))
	v.RegisterValidation("relationship", oneOf(model.Relationships))
	v.RegisterValidation("appointment_type", oneOf(model.AppointmentTypes))
	v.RegisterValidation("claim_status", oneOf(model.ClaimStatuses))
	v.RegisterValidation("mood", oneOf(model.Moods))
	v.RegisterValidation("pregnancy_mood", oneOf(model.PregnancyMoods))

	// Optional fields validate their inner value only when set.
	v.RegisterCustomTypeFunc(unwrapOptional,
		util.Optional[string]{}, util.Optional[int]{}, util.Optional[float64]{},
		util.Optional[model.Mood]{})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func unwrapOptional(field reflect.Value) interface{} {
	switch o := field.Interface().(type) {
	case util.Optional[string]:
		if o.IsSet {
			return o.Val
		}
	case util.Optional[int]:
		if o.IsSet {
			return o.Val
		}
	case util.Optional[float64]:
		if o.IsSet {
			return o.Val
		}
	case util.Optional[model.Mood]:
		if o.IsSet {
			return o.Val
		}
	}
	return nil
}

func oneOf[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == string(a) {
				return true
			}
		}
		return false
	}
}

func validateBloodType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, bt := range bloodTypes {
		if value == bt {
			return true
		}
	}
	return false
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayPattern.MatchString(fl.Field().String())
}
