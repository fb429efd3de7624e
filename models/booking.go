package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// bookingTransitions is the allowed-successor table for the booking workflow.
// completed and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// InvalidTransitionError rejects a status change the workflow does not allow.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition from %s to %s", e.From, e.To)
}

type BookingService struct {
	Category          string  `json:"category" validate:"required"`
	Subcategory       string  `json:"subcategory" validate:"required"`
	Description       string  `json:"description" validate:"required,min=10,max=500"`
	EstimatedDuration float64 `json:"estimatedDuration" validate:"gte=0.5,lte=24"` // hours
}

func (s BookingService) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *BookingService) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

type BookingLocation struct {
	Address      string    `json:"address" validate:"required,min=10,max=200"`
	Coordinates  []float64 `json:"coordinates" validate:"required,len=2"` // [lng, lat]
	Instructions string    `json:"instructions,omitempty" validate:"max=200"`
}

func (l BookingLocation) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *BookingLocation) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

type BookingSchedule struct {
	PreferredDate string `json:"preferredDate"` // "YYYY-MM-DD"
	PreferredTime string `json:"preferredTime"` // "HH:MM", 24h
	ConfirmedDate string `json:"confirmedDate,omitempty"`
	ConfirmedTime string `json:"confirmedTime,omitempty"`
}

func (s BookingSchedule) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *BookingSchedule) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

type BookingPricing struct {
	BasePrice         float64 `json:"basePrice"`
	AdditionalCharges float64 `json:"additionalCharges"`
	TotalAmount       float64 `json:"totalAmount"`
	Currency          string  `json:"currency"`
}

// Normalize computes the server-side total and defaults the currency. Any
// client-submitted total is overwritten.
func (p *BookingPricing) Normalize() {
	p.TotalAmount = p.BasePrice + p.AdditionalCharges
	if p.Currency == "" {
		p.Currency = "INR"
	}
}

func (p BookingPricing) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *BookingPricing) Scan(value interface{}) error {
	return jsonbScan(p, value)
}

type BookingPayment struct {
	Method        string `json:"method"` // "online", "cash" or "wallet"
	Status        string `json:"status"` // "pending", "paid" or "refunded"
	TransactionID string `json:"transactionId,omitempty"`
}

func (p BookingPayment) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *BookingPayment) Scan(value interface{}) error {
	return jsonbScan(p, value)
}

type BookingReview struct {
	Rating  float64  `json:"rating"`
	Comment string   `json:"comment"`
	Images  []string `json:"images,omitempty"`
}

func (r BookingReview) Value() (driver.Value, error) {
	return jsonbValue(r)
}

func (r *BookingReview) Scan(value interface{}) error {
	return jsonbScan(r, value)
}

// Booking links a customer to a provider for one service engagement.
type Booking struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	CustomerID uint            `json:"customerId" gorm:"index:idx_bookings_customer_created"`
	Customer   User            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID uint            `json:"providerId" gorm:"index:idx_bookings_provider_created"`
	Provider   Provider        `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Service    BookingService  `json:"service" gorm:"type:jsonb"`
	Location   BookingLocation `json:"location" gorm:"type:jsonb"`
	Schedule   BookingSchedule `json:"schedule" gorm:"type:jsonb"`
	Pricing    BookingPricing  `json:"pricing" gorm:"type:jsonb"`
	Status     BookingStatus   `json:"status" gorm:"type:varchar(16);default:pending;index"`
	Payment    BookingPayment  `json:"payment" gorm:"type:jsonb"`
	Review     *BookingReview  `json:"review,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time       `json:"createdAt" gorm:"index:idx_bookings_customer_created;index:idx_bookings_provider_created"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Payment.Status == "" {
		b.Payment.Status = "pending"
	}
	return nil
}

// CanTransition reports whether the workflow permits moving to newStatus.
func (b *Booking) CanTransition(newStatus BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// Transition applies a status change, rejecting anything the workflow table
// does not allow.
func (b *Booking) Transition(newStatus BookingStatus) error {
	if !b.CanTransition(newStatus) {
		return &InvalidTransitionError{From: b.Status, To: newStatus}
	}
	b.Status = newStatus
	return nil
}
