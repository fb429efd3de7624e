package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localkart/core-api/config"
	"github.com/localkart/core-api/metrics"
	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

type BookingController struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
	Cfg *config.Config
}

func NewBookingController(gdb *gorm.DB, log *zap.SugaredLogger, cfg *config.Config) *BookingController {
	return &BookingController{DB: gdb, Log: log, Cfg: cfg}
}

type createBookingRequest struct {
	ProviderID uint                   `json:"providerId" validate:"required"`
	Service    models.BookingService  `json:"service" validate:"required"`
	Location   models.BookingLocation `json:"location" validate:"required"`
	Schedule   struct {
		PreferredDate string `json:"preferredDate" validate:"required"`
		PreferredTime string `json:"preferredTime" validate:"required,hhmm"`
	} `json:"schedule" validate:"required"`
	Pricing struct {
		BasePrice         float64 `json:"basePrice" validate:"gte=0"`
		AdditionalCharges float64 `json:"additionalCharges" validate:"gte=0"`
	} `json:"pricing" validate:"required"`
	Payment struct {
		Method string `json:"method" validate:"required,oneof=online cash wallet"`
	} `json:"payment" validate:"required"`
}

// Create places a booking against an active provider. Total amount is always
// computed server-side.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	customerID := c.Locals("userID").(uint)

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid booking payload", fieldErrs)
	}

	var provider models.Provider
	if err := bc.DB.First(&provider, req.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider not found or inactive")
		}
		bc.Log.Errorw("provider lookup failed", "providerId", req.ProviderID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create booking")
	}
	if !provider.IsActive {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider not found or inactive")
	}

	pricing := models.BookingPricing{
		BasePrice:         req.Pricing.BasePrice,
		AdditionalCharges: req.Pricing.AdditionalCharges,
	}
	pricing.Normalize()

	booking := models.Booking{
		CustomerID: customerID,
		ProviderID: provider.ID,
		Service:    req.Service,
		Location:   req.Location,
		Schedule: models.BookingSchedule{
			PreferredDate: req.Schedule.PreferredDate,
			PreferredTime: req.Schedule.PreferredTime,
		},
		Pricing: pricing,
		Status:  models.StatusPending,
		Payment: models.BookingPayment{
			Method: req.Payment.Method,
			Status: "pending",
		},
	}
	if err := bc.DB.Create(&booking).Error; err != nil {
		bc.Log.Errorw("booking create failed", "customerId", customerID, "providerId", provider.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create booking")
	}

	if err := bc.DB.Preload("Customer").Preload("Provider").First(&booking, booking.ID).Error; err != nil {
		bc.Log.Errorw("booking reload failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create booking")
	}

	metrics.BookingsCreatedTotal.Inc()
	bc.Log.Infow("booking created", "bookingId", booking.ID, "customerId", customerID, "providerId", provider.ID)

	return utils.OK(c, fiber.StatusCreated, fiber.Map{"booking": booking})
}

func parsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// MyBookings lists the caller's bookings as a customer, newest first.
func (bc *BookingController) MyBookings(c *fiber.Ctx) error {
	customerID := c.Locals("userID").(uint)
	page, limit := parsePagination(c)

	query := bc.DB.Model(&models.Booking{}).Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		bc.Log.Errorw("booking count failed", "customerId", customerID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get bookings")
	}

	var bookings []models.Booking
	if err := query.Preload("Provider").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		bc.Log.Errorw("booking list failed", "customerId", customerID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get bookings")
	}

	return utils.OKWithMeta(c, fiber.Map{"bookings": bookings}, utils.NewMeta(page, limit, total))
}

// ProviderBookings lists the bookings owned by the caller's provider profile.
func (bc *BookingController) ProviderBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePagination(c)

	var provider models.Provider
	if err := bc.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider profile not found")
	}

	query := bc.DB.Model(&models.Booking{}).Where("provider_id = ?", provider.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		bc.Log.Errorw("booking count failed", "providerId", provider.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get provider bookings")
	}

	var bookings []models.Booking
	if err := query.Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		bc.Log.Errorw("booking list failed", "providerId", provider.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get provider bookings")
	}

	return utils.OKWithMeta(c, fiber.Map{"bookings": bookings}, utils.NewMeta(page, limit, total))
}

// loadBookingForParticipant fetches a booking and verifies the requester is
// its customer or the owning provider's user. Non-participants get a 403
// with the same body shape regardless of role, so nothing beyond existence
// is leaked.
func (bc *BookingController) loadBookingForParticipant(c *fiber.Ctx, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := bc.DB.Preload("Customer").Preload("Provider").Preload("Provider.User").
		First(&booking, c.Params("id")).Error; err != nil {
		return nil, utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Booking not found")
	}

	if booking.CustomerID != userID && booking.Provider.UserID != userID {
		return nil, utils.Fail(c, fiber.StatusForbidden, utils.CodeForbidden, "Access denied to this booking")
	}
	return &booking, nil
}

// GetByID returns one booking to its participants only.
func (bc *BookingController) GetByID(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	booking, err := bc.loadBookingForParticipant(c, userID)
	if err != nil {
		return err
	}
	return utils.OK(c, fiber.StatusOK, fiber.Map{"booking": booking})
}

type updateStatusRequest struct {
	Status        models.BookingStatus `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
	ConfirmedDate string               `json:"confirmedDate" validate:"omitempty"`
	ConfirmedTime string               `json:"confirmedTime" validate:"omitempty,hhmm"`
}

// UpdateStatus transitions a booking's status. Only the owning provider may
// do this, and only along the workflow's allowed edges.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid status payload", fieldErrs)
	}

	var provider models.Provider
	if err := bc.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider profile not found")
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Booking not found")
	}
	if booking.ProviderID != provider.ID {
		return utils.Fail(c, fiber.StatusForbidden, utils.CodeForbidden, "Access denied to this booking")
	}

	if err := booking.Transition(req.Status); err != nil {
		var ite *models.InvalidTransitionError
		if errors.As(err, &ite) {
			return utils.Fail(c, fiber.StatusConflict, utils.CodeConflict, ite.Error())
		}
		bc.Log.Errorw("status transition failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update booking status")
	}

	if req.ConfirmedDate != "" {
		booking.Schedule.ConfirmedDate = req.ConfirmedDate
	}
	if req.ConfirmedTime != "" {
		booking.Schedule.ConfirmedTime = req.ConfirmedTime
	}

	if err := bc.DB.Save(&booking).Error; err != nil {
		bc.Log.Errorw("booking save failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update booking status")
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(req.Status)).Inc()
	bc.Log.Infow("booking status updated", "bookingId", booking.ID, "status", req.Status, "providerId", provider.ID)

	if err := bc.DB.Preload("Customer").Preload("Provider").First(&booking, booking.ID).Error; err != nil {
		bc.Log.Errorw("booking reload failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update booking status")
	}
	return utils.OK(c, fiber.StatusOK, fiber.Map{"booking": booking})
}

type reviewRequest struct {
	Rating  float64  `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string   `json:"comment" validate:"max=500"`
	Images  []string `json:"images"`
}

// SubmitReview lets the booking's customer review a completed booking once,
// folding the score into the provider's rating aggregate.
func (bc *BookingController) SubmitReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid review payload", fieldErrs)
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Booking not found")
	}
	if booking.CustomerID != userID {
		return utils.Fail(c, fiber.StatusForbidden, utils.CodeForbidden, "Access denied to this booking")
	}
	if booking.Status != models.StatusCompleted {
		return utils.Fail(c, fiber.StatusConflict, utils.CodeConflict, "Only completed bookings can be reviewed")
	}
	if booking.Review != nil {
		return utils.Fail(c, fiber.StatusConflict, utils.CodeConflict, "Booking has already been reviewed")
	}

	booking.Review = &models.BookingReview{
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		var provider models.Provider
		if err := tx.First(&provider, booking.ProviderID).Error; err != nil {
			return err
		}
		provider.AddReview(req.Rating)
		return tx.Save(&provider).Error
	})
	if err != nil {
		bc.Log.Errorw("review save failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to submit review")
	}

	bc.Log.Infow("review submitted", "bookingId", booking.ID, "rating", req.Rating)
	return utils.OK(c, fiber.StatusCreated, fiber.Map{"booking": booking})
}

// Messages returns the persisted chat history of a booking to its
// participants, newest first.
func (bc *BookingController) Messages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePagination(c)

	booking, err := bc.loadBookingForParticipant(c, userID)
	if err != nil {
		return err
	}

	query := bc.DB.Model(&models.Message{}).Where("booking_id = ?", booking.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		bc.Log.Errorw("message count failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get messages")
	}

	var messages []models.Message
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&messages).Error; err != nil {
		bc.Log.Errorw("message list failed", "bookingId", booking.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to get messages")
	}

	return utils.OKWithMeta(c, fiber.Map{"messages": messages}, utils.NewMeta(page, limit, total))
}
