package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localkart/core-api/config"
	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

// Reminder window: bookings whose confirmed slot starts roughly one hour out.
const (
	windowStart = 55 * time.Minute
	windowEnd   = 65 * time.Minute
)

type Reminder struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
	Cfg *config.Config
}

// Start schedules the booking reminder job. Runs every minute and emails
// customers whose confirmed booking starts in the next hour.
func Start(gdb *gorm.DB, log *zap.SugaredLogger, cfg *config.Config) (*cron.Cron, error) {
	r := &Reminder{DB: gdb, Log: log, Cfg: cfg}

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", r.sendReminders); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("booking reminder scheduler started")
	return c, nil
}

func (r *Reminder) sendReminders() {
	now := time.Now()

	var bookings []models.Booking
	err := r.DB.Preload("Customer").Preload("Provider").
		Where("status = ?", models.StatusConfirmed).
		Where("schedule->>'confirmedDate' IN ?", reminderDates(now)).
		Find(&bookings).Error
	if err != nil {
		r.Log.Errorw("reminder query failed", "error", err)
		return
	}
	for i := range bookings {
		b := &bookings[i]
		if !DueForReminder(b, now) {
			continue
		}
		if err := r.sendReminderEmail(b); err != nil {
			r.Log.Warnw("reminder email failed", "bookingId", b.ID, "error", err)
			continue
		}
		r.Log.Infow("reminder sent", "bookingId", b.ID, "to", b.Customer.Email)
	}
}

// reminderDates bounds the reminder query to the only confirmed dates that
// can fall inside the window: today, plus tomorrow for runs near midnight.
func reminderDates(now time.Time) []string {
	return []string{
		now.Format("2006-01-02"),
		now.Add(24 * time.Hour).Format("2006-01-02"),
	}
}

// DueForReminder reports whether a booking's confirmed slot falls inside the
// reminder window relative to now. Bookings without a parseable confirmed
// schedule are skipped.
func DueForReminder(b *models.Booking, now time.Time) bool {
	if b.Schedule.ConfirmedDate == "" || b.Schedule.ConfirmedTime == "" {
		return false
	}
	start, err := time.ParseInLocation("2006-01-02 15:04",
		b.Schedule.ConfirmedDate+" "+b.Schedule.ConfirmedTime, now.Location())
	if err != nil {
		return false
	}
	delta := start.Sub(now)
	return delta >= windowStart && delta <= windowEnd
}

func (r *Reminder) sendReminderEmail(b *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Service - %s", b.Service.Subcategory)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your booked service scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s / %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, contact your provider as soon as possible.</p>
		<p>Best regards,</p>
		<p>The LocalKart Team</p>
	`, b.Customer.Profile.FirstName,
		b.Service.Category, b.Service.Subcategory,
		b.Provider.BusinessName,
		b.Schedule.ConfirmedDate,
		b.Schedule.ConfirmedTime,
		b.Location.Address)

	return utils.SendEmail(r.Cfg, b.Customer.Email, subject, body)
}
