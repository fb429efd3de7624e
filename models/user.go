package models

import (
	"database/sql/driver"
	"time"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// GeoLocation is a street address plus [lng, lat] coordinates.
type GeoLocation struct {
	Address     string    `json:"address" validate:"required"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
	City        string    `json:"city" validate:"required"`
	State       string    `json:"state" validate:"required"`
	Pincode     string    `json:"pincode" validate:"required"`
}

type UserProfile struct {
	FirstName string      `json:"firstName" validate:"required,max=50"`
	LastName  string      `json:"lastName" validate:"required,max=50"`
	Phone     string      `json:"phone" validate:"required,min=10,max=13"`
	Avatar    string      `json:"avatar,omitempty"`
	Language  string      `json:"language"`
	Location  GeoLocation `json:"location"`
}

func (p UserProfile) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *UserProfile) Scan(value interface{}) error {
	return jsonbScan(p, value)
}

// User is the identity record. Accounts are never hard-deleted; deactivation
// flips IsActive instead.
type User struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Email      string      `json:"email" gorm:"uniqueIndex"`
	Password   string      `json:"-"`
	Role       UserRole    `json:"role" gorm:"type:varchar(16);default:customer"`
	Profile    UserProfile `json:"profile" gorm:"type:jsonb"`
	IsVerified bool        `json:"isVerified"`
	IsActive   bool        `json:"isActive" gorm:"default:true"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
