package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"bluecollar/logger"
	"bluecollar/metrics"
	"bluecollar/middleware"
	"bluecollar/models/artisan"
	"bluecollar/models/role"
	"bluecollar/models/user"
	"bluecollar/services/auth"
	"bluecollar/services/session"
	"bluecollar/types"
	"bluecollar/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	sessions       *session.Store
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, sessions *session.Store, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, sessions: sessions, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// UserSignup registers a customer account.
func (h *AuthController) UserSignup(c *fiber.Ctx) error {
	var req types.UserSignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Invalid signup payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var count int64
	h.db.Model(&user.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "An account with this username or email already exists",
			Status:  fiber.StatusConflict,
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := user.User{
		PublicID:  uuid.NewString(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
		Role:      role.User,
		Location:  req.Location,
		Address:   req.Address,
		UserImage: req.UserImage,
		Active:    true,
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("User registered successfully: " + newUser.Username)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Account created successfully",
		Status:  fiber.StatusCreated,
		Data:    newUser,
	})
}

// ArtisanSignup registers a provider account. Artisans start unverified
// and stay out of discovery until an admin completes KYC.
func (h *AuthController) ArtisanSignup(c *fiber.Ctx) error {
	var req types.ArtisanSignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Invalid artisan signup payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var count int64
	h.db.Model(&artisan.Artisan{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "An account with this username or email already exists",
			Status:  fiber.StatusConflict,
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newArtisan := artisan.Artisan{
		PublicID:     uuid.NewString(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     hashed,
		Service:      req.Service,
		Location:     req.Location,
		Address:      req.Address,
		ArtisanImage: req.ArtisanImage,
		Active:       true,
		Verified:     false,
	}

	if err := h.db.Create(&newArtisan).Error; err != nil {
		logger.Error("Failed to create artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Artisan registered successfully: " + newArtisan.Username)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Account created successfully. Verification is pending.",
		Status:  fiber.StatusCreated,
		Data:    newArtisan,
	})
}

// UserLogin authenticates a customer or admin account and opens a
// session.
func (h *AuthController) UserLogin(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var account user.User
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid credentials",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !utils.CheckPassword(account.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !account.Active {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Account is deactivated",
			Status:  fiber.StatusForbidden,
		})
	}

	token, err := auth.IssueToken(account.PublicID, account.Username, account.Email, account.Role, account.Active)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	sess := session.Session{
		Token: token,
		User: session.Profile{
			Username:  account.Username,
			Email:     account.Email,
			Role:      account.Role,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Location:  account.Location,
			Address:   account.Address,
			Active:    account.Active,
		},
	}
	if err := h.sessions.Save(c.Context(), &sess); err != nil {
		logger.Error("Failed to persist session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int(auth.TokenTTL.Seconds()))
	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	metrics.Logins.WithLabelValues(account.Role.String()).Inc()

	logger.Success("User logged in successfully: " + account.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    account,
	})
}

// ArtisanLogin authenticates a provider account and opens a session.
func (h *AuthController) ArtisanLogin(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var account artisan.Artisan
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid credentials",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Failed to look up artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !utils.CheckPassword(account.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !account.Active {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Account is deactivated",
			Status:  fiber.StatusForbidden,
		})
	}

	token, err := auth.IssueToken(account.PublicID, account.Username, account.Email, role.Artisan, account.Active)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	sess := session.Session{
		Token: token,
		User: session.Profile{
			Username:  account.Username,
			Email:     account.Email,
			Role:      role.Artisan,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Location:  account.Location,
			Address:   account.Address,
			Active:    account.Active,
		},
	}
	if err := h.sessions.Save(c.Context(), &sess); err != nil {
		logger.Error("Failed to persist session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int(auth.TokenTTL.Seconds()))
	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	metrics.Logins.WithLabelValues(role.Artisan.String()).Inc()

	logger.Success("Artisan logged in successfully: " + account.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    account,
	})
}

// Logout tears down the caller's session and expires the access cookie.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	token, ok := middleware.TokenFromCtx(c)
	if ok {
		if err := h.sessions.Clear(c.Context(), token); err != nil {
			logger.Error("Failed to clear session", err)
		}
	}

	h.setSecureCookie(c, "access", "", -1)
	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User logged out at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged out successfully",
		Status:  fiber.StatusOK,
	})
}
