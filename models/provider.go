package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ServiceOffering is a single line in a provider's service catalogue.
type ServiceOffering struct {
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory" validate:"required"`
	BasePrice   float64 `json:"basePrice" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"required,oneof=hour service square_feet"`
}

type ServiceOfferings []ServiceOffering

func (s ServiceOfferings) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *ServiceOfferings) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

// ServiceArea is a city with the pincodes and coverage radius (km) a provider
// claims to serve.
type ServiceArea struct {
	City     string   `json:"city" validate:"required"`
	Pincodes []string `json:"pincodes" validate:"required,min=1"`
	Radius   float64  `json:"radius" validate:"gte=1,lte=50"`
}

type ServiceAreas []ServiceArea

func (s ServiceAreas) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *ServiceAreas) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

type AvailabilitySlot struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

type Availability struct {
	Days      []string           `json:"days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlots []AvailabilitySlot `json:"timeSlots" validate:"dive"`
}

func (a Availability) Value() (driver.Value, error) {
	return jsonbValue(a)
}

func (a *Availability) Scan(value interface{}) error {
	return jsonbScan(a, value)
}

// GeneratedProfile is the summary/skills block derived from the declared
// services at registration time.
type GeneratedProfile struct {
	Summary     string   `json:"summary"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	Specialties []string `json:"specialties"`
}

func (g GeneratedProfile) Value() (driver.Value, error) {
	return jsonbValue(g)
}

func (g *GeneratedProfile) Scan(value interface{}) error {
	return jsonbScan(g, value)
}

type PortfolioItem struct {
	Images       []string `json:"images"`
	Descriptions []string `json:"descriptions"`
}

type PortfolioItems []PortfolioItem

func (p PortfolioItems) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *PortfolioItems) Scan(value interface{}) error {
	return jsonbScan(p, value)
}

type VerificationDocument struct {
	Type     string `json:"type"` // "license", "certificate" or "insurance"
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

type VerificationDocuments []VerificationDocument

func (d VerificationDocuments) Value() (driver.Value, error) {
	return jsonbValue(d)
}

func (d *VerificationDocuments) Scan(value interface{}) error {
	return jsonbScan(d, value)
}

// Rating is the aggregate review score. Stored as plain columns so search can
// sort on them in SQL.
type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Provider extends a User with a business profile. UserID is unique: at most
// one provider per account.
type Provider struct {
	ID               uint                  `json:"id" gorm:"primaryKey"`
	UserID           uint                  `json:"userId" gorm:"uniqueIndex"`
	User             User                  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessName     string                `json:"businessName"`
	Description      string                `json:"description"`
	GeneratedProfile GeneratedProfile      `json:"aiGeneratedProfile" gorm:"type:jsonb"`
	Services         ServiceOfferings      `json:"services" gorm:"type:jsonb"`
	ServiceAreas     ServiceAreas          `json:"serviceAreas" gorm:"type:jsonb"`
	Availability     Availability          `json:"availability" gorm:"type:jsonb"`
	Rating           Rating                `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	Portfolio        PortfolioItems        `json:"portfolio" gorm:"type:jsonb"`
	Documents        VerificationDocuments `json:"documents" gorm:"type:jsonb"`
	IsVerified       bool                  `json:"isVerified" gorm:"index"`
	IsActive         bool                  `json:"isActive" gorm:"default:true;index"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// BuildGeneratedProfile derives the profile summary from the declared
// services. Deterministic string templating, no external calls.
func BuildGeneratedProfile(services ServiceOfferings) GeneratedProfile {
	category := "service"
	if len(services) > 0 && services[0].Category != "" {
		category = services[0].Category
	}

	skills := make([]string, 0, len(services))
	for _, s := range services {
		skills = append(skills, s.Subcategory)
	}

	return GeneratedProfile{
		Summary:     fmt.Sprintf("Professional %s provider with expertise in %s", category, strings.Join(skills, ", ")),
		Skills:      skills,
		Experience:  "Experienced professional",
		Specialties: skills,
	}
}

// AddReview folds one more review score into the aggregate rating.
func (p *Provider) AddReview(score float64) {
	total := p.Rating.Average*float64(p.Rating.Count) + score
	p.Rating.Count++
	p.Rating.Average = total / float64(p.Rating.Count)
}
