package utils

import (
	"testing"
)

type validateFixture struct {
	Email string `validate:"required,email"`
	Start string `validate:"omitempty,hhmm"`
	Tier  string `validate:"omitempty,oneof=basic premium"`
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(&validateFixture{Email: "a@b.com", Start: "09:30", Tier: "basic"})
	if errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	errs := ValidateStruct(&validateFixture{Email: "not-an-email", Tier: "gold"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", errs)
	}
	if errs[0].Field != "Email" || errs[0].Rule != "email" {
		t.Errorf("unexpected first error: %+v", errs[0])
	}
	if errs[1].Field != "Tier" || errs[1].Rule != "oneof" {
		t.Errorf("unexpected second error: %+v", errs[1])
	}
}

func TestHHMMValidation(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"9:05", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"noon", false},
		{"12-30", false},
	}

	for _, tc := range cases {
		errs := ValidateStruct(&validateFixture{Email: "a@b.com", Start: tc.value})
		got := errs == nil
		if got != tc.valid {
			t.Errorf("hhmm %q: valid = %v, want %v", tc.value, got, tc.valid)
		}
	}
}
