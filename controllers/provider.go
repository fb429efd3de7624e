package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localkart/core-api/config"
	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

type ProviderController struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
	Cfg *config.Config
}

func NewProviderController(gdb *gorm.DB, log *zap.SugaredLogger, cfg *config.Config) *ProviderController {
	return &ProviderController{DB: gdb, Log: log, Cfg: cfg}
}

type providerRegisterRequest struct {
	BusinessName string                  `json:"businessName" validate:"required,max=100"`
	Description  string                  `json:"description" validate:"required,max=1000"`
	Services     models.ServiceOfferings `json:"services" validate:"required,min=1,dive"`
	ServiceAreas models.ServiceAreas     `json:"serviceAreas" validate:"required,min=1,dive"`
	Availability models.Availability     `json:"availability" validate:"required"`
}

// Register turns a customer account into a provider: creates the provider
// profile with a generated summary and promotes the user's role.
func (pc *ProviderController) Register(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req providerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid provider payload", fieldErrs)
	}

	var existing models.Provider
	err := pc.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return utils.Fail(c, fiber.StatusConflict, utils.CodeConflict, "Provider profile already exists for this user")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		pc.Log.Errorw("provider lookup failed", "userId", userID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register as provider")
	}

	provider := models.Provider{
		UserID:           userID,
		BusinessName:     req.BusinessName,
		Description:      req.Description,
		GeneratedProfile: models.BuildGeneratedProfile(req.Services),
		Services:         req.Services,
		ServiceAreas:     req.ServiceAreas,
		Availability:     req.Availability,
		Portfolio:        models.PortfolioItems{},
		Documents:        models.VerificationDocuments{},
		IsActive:         true,
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("role", models.RoleProvider).Error
	})
	if err != nil {
		pc.Log.Errorw("provider registration failed", "userId", userID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register as provider")
	}

	pc.Log.Infow("provider registered", "userId", userID, "providerId", provider.ID)
	return utils.OK(c, fiber.StatusCreated, fiber.Map{"provider": provider})
}

// GetProfile returns the caller's own provider profile.
func (pc *ProviderController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := pc.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider profile not found")
	}
	return utils.OK(c, fiber.StatusOK, fiber.Map{"provider": provider})
}

type providerUpdateRequest struct {
	BusinessName *string                  `json:"businessName" validate:"omitempty,max=100"`
	Description  *string                  `json:"description" validate:"omitempty,max=1000"`
	Services     *models.ServiceOfferings `json:"services" validate:"omitempty,min=1,dive"`
	ServiceAreas *models.ServiceAreas     `json:"serviceAreas" validate:"omitempty,min=1,dive"`
	Availability *models.Availability     `json:"availability"`
}

// UpdateProfile merge-updates the caller's provider profile. Changing the
// services regenerates the summary block.
func (pc *ProviderController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req providerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid provider payload", fieldErrs)
	}

	var provider models.Provider
	if err := pc.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider profile not found")
	}

	if req.BusinessName != nil {
		provider.BusinessName = *req.BusinessName
	}
	if req.Description != nil {
		provider.Description = *req.Description
	}
	if req.Services != nil {
		provider.Services = *req.Services
		provider.GeneratedProfile = models.BuildGeneratedProfile(provider.Services)
	}
	if req.ServiceAreas != nil {
		provider.ServiceAreas = *req.ServiceAreas
	}
	if req.Availability != nil {
		provider.Availability = *req.Availability
	}

	if err := pc.DB.Save(&provider).Error; err != nil {
		pc.Log.Errorw("provider update failed", "userId", userID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update provider profile")
	}

	return utils.OK(c, fiber.StatusOK, fiber.Map{"provider": provider})
}

// searchQuery holds the parsed /providers/search parameters.
type searchQuery struct {
	City     string
	Category string
	Lat      float64
	Lng      float64
	HasPoint bool
	Radius   float64
}

// matchesSearch applies the city/category/geo predicates to one provider.
// When coordinates are given, a provider matches if one of its service areas
// covers the query point: the area's configured radius meets the requested
// radius and the haversine distance from the point to the provider's
// registered location stays within that radius.
func matchesSearch(p *models.Provider, q searchQuery) bool {
	if !p.IsActive || !p.IsVerified {
		return false
	}

	if q.City != "" {
		found := false
		for _, area := range p.ServiceAreas {
			if strings.Contains(strings.ToLower(area.City), strings.ToLower(q.City)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.Category != "" {
		found := false
		for _, svc := range p.Services {
			if strings.Contains(strings.ToLower(svc.Category), strings.ToLower(q.Category)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.Radius > 0 {
		found := false
		for _, area := range p.ServiceAreas {
			if area.Radius < q.Radius {
				continue
			}
			if !q.HasPoint {
				found = true
				break
			}
			coords := p.User.Profile.Location.Coordinates
			if len(coords) != 2 {
				continue
			}
			// Coordinates are stored [lng, lat].
			if utils.Haversine(q.Lat, q.Lng, coords[1], coords[0]) <= area.Radius {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Search lists active, verified providers matching the query, sorted by
// rating average then rating count, paginated.
func (pc *ProviderController) Search(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := searchQuery{
		City:     c.Query("city"),
		Category: c.Query("category"),
	}
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "lat and lng must be numbers")
		}
		q.Lat, q.Lng, q.HasPoint = lat, lng, true
	}
	if radiusStr := c.Query("radius"); radiusStr != "" || q.HasPoint {
		radius, err := strconv.ParseFloat(c.Query("radius", "10"), 64)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "radius must be a number")
		}
		q.Radius = radius
	}

	// City and category bound the candidate set in SQL; the geo predicate
	// still runs in Go via matchesSearch.
	tx := pc.DB.Preload("User").
		Where("is_active = ? AND is_verified = ?", true, true)
	if q.City != "" {
		tx = tx.Where("EXISTS (SELECT 1 FROM jsonb_array_elements(service_areas) AS area WHERE area->>'city' ILIKE ?)",
			"%"+q.City+"%")
	}
	if q.Category != "" {
		tx = tx.Where("EXISTS (SELECT 1 FROM jsonb_array_elements(services) AS svc WHERE svc->>'category' ILIKE ?)",
			"%"+q.Category+"%")
	}

	var providers []models.Provider
	if err := tx.Order("rating_average DESC, rating_count DESC").
		Find(&providers).Error; err != nil {
		pc.Log.Errorw("provider search failed", "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to search providers")
	}

	matched := make([]models.Provider, 0, len(providers))
	for i := range providers {
		if matchesSearch(&providers[i], q) {
			matched = append(matched, providers[i])
		}
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return utils.OKWithMeta(c, fiber.Map{"providers": matched[start:end]}, utils.NewMeta(page, limit, total))
}

// GetByID returns a single provider with its public user fields.
func (pc *ProviderController) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	if err := pc.DB.Preload("User").First(&provider, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider not found")
	}
	return utils.OK(c, fiber.StatusOK, fiber.Map{"provider": provider})
}

// portfolioPublicID is unique per upload, so removing a portfolio item never
// frees an ID that a later upload would silently overwrite on Cloudinary.
func portfolioPublicID(providerID uint) string {
	return fmt.Sprintf("provider-%d-%s", providerID, uuid.NewString())
}

// UploadPortfolio stores a portfolio image on Cloudinary and appends it to
// the caller's provider profile.
func (pc *ProviderController) UploadPortfolio(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.Provider
	if err := pc.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider profile not found")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "An image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot read the uploaded file")
	}
	defer file.Close()

	url, err := utils.UploadImage(c.Context(), pc.Cfg, file, portfolioPublicID(provider.ID), "portfolio")
	if err != nil {
		pc.Log.Errorw("portfolio upload failed", "providerId", provider.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to upload portfolio image")
	}

	provider.Portfolio = append(provider.Portfolio, models.PortfolioItem{
		Images:       []string{url},
		Descriptions: []string{c.FormValue("description")},
	})
	if err := pc.DB.Save(&provider).Error; err != nil {
		pc.Log.Errorw("portfolio save failed", "providerId", provider.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to save portfolio")
	}

	return utils.OK(c, fiber.StatusCreated, fiber.Map{"provider": provider})
}
