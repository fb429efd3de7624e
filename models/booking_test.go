package models

import (
	"errors"
	"strings"
	"testing"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.from}
		err := b.Transition(tc.to)
		if tc.allowed {
			if err != nil {
				t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
			}
			if b.Status != tc.to {
				t.Errorf("%s -> %s: status not applied, got %s", tc.from, tc.to, b.Status)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s -> %s: expected rejection", tc.from, tc.to)
			continue
		}
		var ite *InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Errorf("%s -> %s: expected InvalidTransitionError, got %T", tc.from, tc.to, err)
		}
		if b.Status != tc.from {
			t.Errorf("%s -> %s: rejected transition mutated status to %s", tc.from, tc.to, b.Status)
		}
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: StatusCompleted, To: StatusPending}
	if !strings.Contains(err.Error(), "completed") || !strings.Contains(err.Error(), "pending") {
		t.Errorf("error message should name both states: %q", err.Error())
	}
}

func TestPricingNormalize(t *testing.T) {
	p := BookingPricing{BasePrice: 500, AdditionalCharges: 50}
	p.Normalize()
	if p.TotalAmount != 550 {
		t.Errorf("expected total 550, got %v", p.TotalAmount)
	}
	if p.Currency != "INR" {
		t.Errorf("expected default currency INR, got %q", p.Currency)
	}
}

func TestPricingNormalizeNoAdditionalCharges(t *testing.T) {
	p := BookingPricing{BasePrice: 500}
	p.Normalize()
	if p.TotalAmount != 500 {
		t.Errorf("expected total 500, got %v", p.TotalAmount)
	}
}

func TestPricingNormalizeOverwritesClientTotal(t *testing.T) {
	p := BookingPricing{BasePrice: 100, AdditionalCharges: 20, TotalAmount: 9999, Currency: "USD"}
	p.Normalize()
	if p.TotalAmount != 120 {
		t.Errorf("client-submitted total must be overwritten, got %v", p.TotalAmount)
	}
	if p.Currency != "USD" {
		t.Errorf("explicit currency must be kept, got %q", p.Currency)
	}
}

func TestBookingBeforeCreateDefaults(t *testing.T) {
	b := Booking{}
	if err := b.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if b.Status != StatusPending {
		t.Errorf("expected default status pending, got %s", b.Status)
	}
	if b.Payment.Status != "pending" {
		t.Errorf("expected default payment status pending, got %q", b.Payment.Status)
	}
}
