package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// BookingValidator combines the shared field rules with the struct tags on
// model.Booking (length caps, listingId).
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Validate returns every failing field. Field rules win over struct rules
// when both reject the same field.
func (v *BookingValidator) Validate(booking *model.Booking) validation.Errors {
	errs := validation.ValidateBooking(*booking)

	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			v.logger.Error("Unexpected struct validation failure", "error", err)
			errs["booking"] = "Booking could not be validated"
			return errs
		}
		for _, fe := range validationErrs {
			if errs.Has(fe.Field()) {
				continue
			}
			errs[fe.Field()] = translate(fe)
		}
	}

	return errs
}

func translate(fe validator.FieldError) string {
	if fe.Field() == validation.FieldListingID && fe.Tag() == "required" {
		return validation.MsgListingIDRequired
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "mongodb":
		return fmt.Sprintf("%s must be a valid MongoDB ObjectID", fe.Field())
	default:
		return fe.Error()
	}
}
