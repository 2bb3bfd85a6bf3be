package validator

import (
	bookingserrors "stayhub/internal/bookings/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

type BookingValidator struct {
	validator *appvalidator.Validator
	logger    *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validator: appvalidator.New(log),
		logger:    log,
	}
}

// Validate checks the request body and returns the requested stay. Tag
// violations come back as appvalidator.ValidationErrors; a start after the
// end is bookingserrors.ErrInvalidRange.
func (v *BookingValidator) Validate(input *model.BookingInput) (model.DateRange, error) {
	if err := v.validator.Struct(input); err != nil {
		return model.DateRange{}, err
	}

	start, err := model.ParseDate(input.Start)
	if err != nil {
		return model.DateRange{}, appvalidator.ValidationErrors{{Field: "start", Message: err.Error()}}
	}
	end, err := model.ParseDate(input.End)
	if err != nil {
		return model.DateRange{}, appvalidator.ValidationErrors{{Field: "end", Message: err.Error()}}
	}

	period := model.DateRange{Start: start, End: end}
	if !period.Valid() {
		return model.DateRange{}, bookingserrors.ErrInvalidRange
	}
	return period, nil
}
