package validator

import (
	"errors"
	"testing"

	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func validUser() model.UserInput {
	return model.UserInput{
		Name:        "Ada",
		Surname:     "Lovelace",
		Email:       "ada@example.com",
		YearOfBirth: 1990,
		Address: model.UserAddressInput{
			Street:     "1 Analytical Way",
			City:       "London",
			Country:    "UK",
			PostalCode: "N1",
		},
		Password: "secret123",
	}
}

func TestStruct_UserInput(t *testing.T) {
	v := New(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(u *model.UserInput)
		wantField string
	}{
		{"valid", func(u *model.UserInput) {}, ""},
		{"bad email", func(u *model.UserInput) { u.Email = "not-an-email" }, "email"},
		{"short password", func(u *model.UserInput) { u.Password = "abc12" }, "password"},
		{"password with symbols", func(u *model.UserInput) { u.Password = "secret!!123" }, "password"},
		{"short street", func(u *model.UserInput) { u.Address.Street = "abc" }, "address.street"},
		{"missing city", func(u *model.UserInput) { u.Address.City = "" }, "address.city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validUser()
			tt.mutate(&in)

			err := v.Struct(&in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestStruct_PlaceInput(t *testing.T) {
	v := New(logger.Discard())

	in := model.PlaceInput{
		Title:       "Cozy",
		Description: "A cozy flat near the river",
		Address: model.AddressInput{
			Street:     "Main 1",
			City:       "Porto",
			PostalCode: "4000",
			Country:    "Portugal",
			Latitude:   ptr(41.15),
			Longitude:  ptr(-8.61),
		},
		Price: ptr(80.0),
		Start: "2023-01-01",
		End:   "2023-01-31",
	}
	if err := v.Struct(&in); err != nil {
		t.Fatalf("expected valid place, got %v", err)
	}

	in.Start = "01/01/2023"
	in.Address.Latitude = ptr(123.0)
	in.Price = nil

	var verrs ValidationErrors
	if !errors.As(v.Struct(&in), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	details := verrs.Details()
	for _, field := range []string{"start", "address.latitude", "price"} {
		if _, ok := details[field]; !ok {
			t.Errorf("expected error on %q, got %v", field, details)
		}
	}
}
