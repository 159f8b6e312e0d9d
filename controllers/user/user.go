package user

import (
	"errors"
	"fmt"

	"bluecollar/logger"
	"bluecollar/middleware"
	"bluecollar/models/user"
	"bluecollar/services/session"
	"bluecollar/types"
	"bluecollar/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	db             *gorm.DB
	sessions       *session.Store
	loggerInstance *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, sessions *session.Store, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{db: db, sessions: sessions, loggerInstance: asyncLogger}
}

// Profile returns the caller's account, revalidating the stored session
// on the way. A missing or malformed session forces re-authentication.
func (h *UserController) Profile(c *fiber.Ctx) error {
	token, ok := middleware.TokenFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	sess, err := h.sessions.Load(c.Context(), token)
	if err != nil {
		// Load already cleared a malformed session; either way the
		// client has to log in again.
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var account user.User
	if err := h.db.Where("username = ?", sess.User.Username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.sessions.Clear(c.Context(), token)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Account no longer exists",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Failed to load profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to load profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

// UpdateProfile applies the provided fields to the caller's account.
func (h *UserController) UpdateProfile(c *fiber.Ctx) error {
	username, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req types.ProfileUpdateRequest
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
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Message: "Account not found",
			Status:  fiber.StatusNotFound,
		})
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.UserImage != nil {
		updates["user_image"] = *req.UserImage
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Nothing to update",
			Status:  fiber.StatusOK,
			Data:    account,
		})
	}

	if err := h.db.Model(&account).Updates(updates).Error; err != nil {
		logger.Error("Failed to update profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Profile updated for " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

// UpdatePassword changes the caller's password after verifying the old
// one.
func (h *UserController) UpdatePassword(c *fiber.Ctx) error {
	username, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req types.PasswordUpdateRequest
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
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Message: "Account not found",
			Status:  fiber.StatusNotFound,
		})
	}

	if !utils.CheckPassword(account.Password, req.OldPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Old password is incorrect",
			Status:  fiber.StatusUnauthorized,
		})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.db.Model(&account).Update("password", hashed).Error; err != nil {
		logger.Error("Failed to update password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Password updated for " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Password updated successfully",
		Status:  fiber.StatusOK,
	})
}

// List returns all customer accounts for the admin oversight view.
func (h *UserController) List(c *fiber.Ctx) error {
	var accounts []user.User
	if err := h.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		logger.Error("Failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list users",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Users fetched successfully",
		Status:  fiber.StatusOK,
		Data:    accounts,
	})
}

// KycVerify marks a user account as verified after an admin confirms the
// submitted identity fields against the stored record.
func (h *UserController) KycVerify(c *fiber.Ctx) error {
	username := c.Params("username")

	var req types.KycRequest
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
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Account not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Verification failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if req.FirstName != account.FirstName || req.LastName != account.LastName ||
		req.Email != account.Email || req.Phone != account.Phone {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Submitted identity does not match the account on record",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}

	if err := h.db.Model(&account).Update("verified", true).Error; err != nil {
		logger.Error("Failed to verify user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Verification failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("User verified: " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Account verified successfully",
		Status:  fiber.StatusOK,
	})
}
