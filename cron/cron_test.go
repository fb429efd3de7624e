package cron

import (
	"testing"
	"time"

	"github.com/localkart/core-api/models"
)

func confirmedBooking(date, clock string) *models.Booking {
	return &models.Booking{
		Status: models.StatusConfirmed,
		Schedule: models.BookingSchedule{
			ConfirmedDate: date,
			ConfirmedTime: clock,
		},
	}
}

func TestDueForReminder(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		date  string
		clock string
		due   bool
	}{
		{"one hour out", "2026-03-14", "10:00", true},
		{"56 minutes out", "2026-03-14", "09:56", true},
		{"64 minutes out", "2026-03-14", "10:04", true},
		{"30 minutes out", "2026-03-14", "09:30", false},
		{"two hours out", "2026-03-14", "11:00", false},
		{"already started", "2026-03-14", "08:00", false},
		{"next day", "2026-03-15", "10:00", false},
	}

	for _, tc := range cases {
		b := confirmedBooking(tc.date, tc.clock)
		if got := DueForReminder(b, now); got != tc.due {
			t.Errorf("%s: due = %v, want %v", tc.name, got, tc.due)
		}
	}
}

func TestReminderDatesCoverMidnightCrossover(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	dates := reminderDates(now)
	if len(dates) != 2 || dates[0] != "2026-03-14" || dates[1] != "2026-03-15" {
		t.Errorf("dates = %v", dates)
	}
}

func TestDueForReminderUnconfirmedSchedule(t *testing.T) {
	now := time.Now()

	b := confirmedBooking("", "")
	if DueForReminder(b, now) {
		t.Error("booking without a confirmed schedule is never due")
	}

	b = confirmedBooking("2026-03-14", "")
	if DueForReminder(b, now) {
		t.Error("booking without a confirmed time is never due")
	}

	b = confirmedBooking("soon", "10:00")
	if DueForReminder(b, now) {
		t.Error("unparseable schedule is never due")
	}
}
