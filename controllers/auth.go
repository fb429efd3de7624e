package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/localkart/core-api/config"
	"github.com/localkart/core-api/metrics"
	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

const (
	bcryptCost = 12
	tokenTTL   = 7 * 24 * time.Hour
)

type AuthController struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
	Cfg *config.Config
}

func NewAuthController(gdb *gorm.DB, log *zap.SugaredLogger, cfg *config.Config) *AuthController {
	return &AuthController{DB: gdb, Log: log, Cfg: cfg}
}

// IssueToken signs a bearer token carrying the user's identity.
func IssueToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   string(user.Role),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type registerRequest struct {
	Email    string             `json:"email" validate:"required,email"`
	Password string             `json:"password" validate:"required,min=8"`
	Role     models.UserRole    `json:"role" validate:"omitempty,oneof=customer provider admin"`
	Profile  models.UserProfile `json:"profile" validate:"required"`
}

// Register creates a user account and returns it with a fresh token.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid registration payload", fieldErrs)
	}

	var existing models.User
	err := ac.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return utils.Fail(c, fiber.StatusConflict, utils.CodeConflict, "User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ac.Log.Errorw("user lookup failed", "email", req.Email, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		ac.Log.Errorw("password hash failed", "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		Profile:  req.Profile,
		IsActive: true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		ac.Log.Errorw("user create failed", "email", req.Email, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register user")
	}

	token, err := IssueToken(&user, ac.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		ac.Log.Errorw("token sign failed", "userId", user.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to register user")
	}

	metrics.RegistrationsTotal.Inc()
	ac.Log.Infow("user registered", "userId", user.ID, "email", user.Email)

	return utils.OK(c, fiber.StatusCreated, fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns the user with a fresh token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid login payload", fieldErrs)
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid email or password")
		}
		ac.Log.Errorw("user lookup failed", "email", req.Email, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to login")
	}
	if !user.IsActive {
		return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid email or password")
	}

	token, err := IssueToken(&user, ac.Cfg.JWTSecret, tokenTTL)
	if err != nil {
		ac.Log.Errorw("token sign failed", "userId", user.ID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to login")
	}

	metrics.LoginsTotal.Inc()
	ac.Log.Infow("user logged in", "userId", user.ID)

	return utils.OK(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GetMe returns the caller's own profile.
func (ac *AuthController) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "User not found")
	}
	return utils.OK(c, fiber.StatusOK, fiber.Map{"user": user})
}

type updateProfileRequest struct {
	FirstName *string             `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string             `json:"lastName" validate:"omitempty,max=50"`
	Phone     *string             `json:"phone" validate:"omitempty,min=10,max=13"`
	Avatar    *string             `json:"avatar"`
	Language  *string             `json:"language"`
	Location  *models.GeoLocation `json:"location"`
}

// UpdateMe merge-updates the caller's profile fields; absent fields are left
// untouched.
func (ac *AuthController) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Cannot parse JSON")
	}
	if fieldErrs := utils.ValidateStruct(&req); fieldErrs != nil {
		return utils.Fail(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid profile payload", fieldErrs)
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "User not found")
	}

	if req.FirstName != nil {
		user.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.Profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Profile.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Profile.Avatar = *req.Avatar
	}
	if req.Language != nil {
		user.Profile.Language = *req.Language
	}
	if req.Location != nil {
		user.Profile.Location = *req.Location
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		ac.Log.Errorw("profile update failed", "userId", userID, "error", err)
		return utils.Fail(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update profile")
	}

	return utils.OK(c, fiber.StatusOK, fiber.Map{"user": user})
}
