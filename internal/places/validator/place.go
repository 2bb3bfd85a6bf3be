package validator

import (
	"math"

	placeserrors "stayhub/internal/places/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

type PlaceValidator struct {
	validator *appvalidator.Validator
	logger    *logger.Logger
}

func NewPlaceValidator(log *logger.Logger) *PlaceValidator {
	return &PlaceValidator{
		validator: appvalidator.New(log),
		logger:    log,
	}
}

// Validate checks a create or replace body and returns its availability
// window.
func (v *PlaceValidator) Validate(input *model.PlaceInput) (model.DateRange, error) {
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

	window := model.DateRange{Start: start, End: end}
	if !window.Valid() {
		return model.DateRange{}, placeserrors.ErrInvalidAvailability
	}
	return window, nil
}

// ValidateFilter rejects search filters that cannot match consistently.
func (v *PlaceValidator) ValidateFilter(filter *model.PlaceFilter) appvalidator.ValidationErrors {
	var errs appvalidator.ValidationErrors

	numbers := []struct {
		field string
		value *float64
	}{
		{"priceMin", filter.PriceMin},
		{"priceMax", filter.PriceMax},
		{"latitude", filter.Latitude},
		{"longitude", filter.Longitude},
		{"distance", filter.DistanceKm},
	}
	for _, n := range numbers {
		if n.value != nil && (math.IsNaN(*n.value) || math.IsInf(*n.value, 0)) {
			errs = append(errs, appvalidator.ValidationError{Field: n.field, Message: n.field + " must be a finite number"})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	if filter.PriceMin != nil && *filter.PriceMin < 0 {
		errs = append(errs, appvalidator.ValidationError{Field: "priceMin", Message: "priceMin must be greater than or equal to 0"})
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		errs = append(errs, appvalidator.ValidationError{Field: "priceMax", Message: "priceMax must be greater than or equal to priceMin"})
	}

	geo := 0
	for _, p := range []*float64{filter.Latitude, filter.Longitude, filter.DistanceKm} {
		if p != nil {
			geo++
		}
	}
	if geo > 0 && geo < 3 {
		errs = append(errs, appvalidator.ValidationError{Field: "distance", Message: "latitude, longitude and distance must be given together"})
	}
	if filter.Latitude != nil && (*filter.Latitude < -90 || *filter.Latitude > 90) {
		errs = append(errs, appvalidator.ValidationError{Field: "latitude", Message: "latitude must be a valid latitude"})
	}
	if filter.Longitude != nil && (*filter.Longitude < -180 || *filter.Longitude > 180) {
		errs = append(errs, appvalidator.ValidationError{Field: "longitude", Message: "longitude must be a valid longitude"})
	}
	if filter.DistanceKm != nil && *filter.DistanceKm < 0 {
		errs = append(errs, appvalidator.ValidationError{Field: "distance", Message: "distance must be greater than or equal to 0"})
	}

	return errs
}
