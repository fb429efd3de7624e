package models

import (
	"database/sql/driver"
	"time"
)

type MessageAttachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type MessageAttachments []MessageAttachment

func (a MessageAttachments) Value() (driver.Value, error) {
	return jsonbValue(a)
}

func (a *MessageAttachments) Scan(value interface{}) error {
	return jsonbScan(a, value)
}

// Message is one chat entry scoped to a booking. The relay assigns the ID
// before broadcasting, so it is a uuid rather than a serial.
type Message struct {
	ID          string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BookingID   uint               `json:"bookingId" gorm:"index:idx_messages_booking_created"`
	SenderID    uint               `json:"senderId"`
	ReceiverID  uint               `json:"receiverId"`
	Content     string             `json:"content"`
	Type        string             `json:"type" gorm:"type:varchar(16);default:text"`
	Attachments MessageAttachments `json:"attachments,omitempty" gorm:"type:jsonb"`
	IsRead      bool               `json:"isRead"`
	CreatedAt   time.Time          `json:"timestamp" gorm:"index:idx_messages_booking_created"`
}
