package validator

import (
	"errors"
	"testing"

	bookingserrors "stayhub/internal/bookings/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

func TestValidate(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())

	tests := []struct {
		name        string
		input       model.BookingInput
		wantNights  int
		wantField   string
		wantInvalid bool
	}{
		{
			name:       "valid stay",
			input:      model.BookingInput{PlaceID: "p-1", Start: "2023-01-10", End: "2023-01-15"},
			wantNights: 5,
		},
		{
			name:       "single day",
			input:      model.BookingInput{PlaceID: "p-1", Start: "2023-01-10", End: "2023-01-10"},
			wantNights: 0,
		},
		{
			name:      "missing place",
			input:     model.BookingInput{Start: "2023-01-10", End: "2023-01-15"},
			wantField: "placeId",
		},
		{
			name:      "malformed start",
			input:     model.BookingInput{PlaceID: "p-1", Start: "10/01/2023", End: "2023-01-15"},
			wantField: "start",
		},
		{
			name:        "start after end",
			input:       model.BookingInput{PlaceID: "p-1", Start: "2023-01-16", End: "2023-01-15"},
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := validator.Validate(&tt.input)

			switch {
			case tt.wantInvalid:
				if !errors.Is(err, bookingserrors.ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
			case tt.wantField != "":
				var fieldErrs appvalidator.ValidationErrors
				if !errors.As(err, &fieldErrs) {
					t.Fatalf("expected validation errors, got %v", err)
				}
				if _, ok := fieldErrs.Details()[tt.wantField]; !ok {
					t.Errorf("expected error on %s, got %v", tt.wantField, fieldErrs.Details())
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if period.Nights() != tt.wantNights {
					t.Errorf("expected %d nights, got %d", tt.wantNights, period.Nights())
				}
			}
		})
	}
}
