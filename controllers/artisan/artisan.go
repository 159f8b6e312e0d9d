package artisan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bluecollar/logger"
	"bluecollar/metrics"
	"bluecollar/middleware"
	"bluecollar/models/address"
	"bluecollar/models/artisan"
	"bluecollar/models/booking"
	"bluecollar/models/review"
	"bluecollar/models/role"
	"bluecollar/services/discovery"
	"bluecollar/services/geo"
	"bluecollar/types"
	"bluecollar/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ArtisanController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewArtisanController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ArtisanController {
	return &ArtisanController{db: db, loggerInstance: asyncLogger}
}

// Index returns a page of artisans. Non-admin callers only ever see
// active, verified artisans; admins see the full roster.
func (h *ArtisanController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c)

	query := h.db.Model(&artisan.Artisan{}).Preload("Reviews")
	callerRole, _ := middleware.RoleFromCtx(c)
	if callerRole != role.Admin {
		query = query.Where("active = ? AND verified = ?", true, true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count artisans", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list artisans",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var artisans []artisan.Artisan
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * discovery.ItemsPerPage).
		Limit(discovery.ItemsPerPage).
		Find(&artisans).Error; err != nil {
		logger.Error("Failed to list artisans", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list artisans",
			Status:  fiber.StatusInternalServerError,
		})
	}

	totalPages := int((total + discovery.ItemsPerPage - 1) / discovery.ItemsPerPage)

	return c.Status(fiber.StatusOK).JSON(types.ArtisanPageResponse{
		ArtisanItems:      artisans,
		TotalArtisanItems: total,
		CurrentPage:       page,
		TotalPages:        totalPages,
		Success:           true,
	})
}

// Search filters the artisan roster by the discovery criteria and,
// when the caller supplies coordinates, by geographic radius.
// Filtering always runs server-side over the full candidate set before
// pagination.
func (h *ArtisanController) Search(c *fiber.Ctx) error {
	page := utils.ParsePage(c)

	criteria := discovery.Criteria{
		Search:   c.Query("search"),
		Service:  c.Query("service"),
		Location: c.Query("location"),
	}
	if raw := c.Query("includedServices"); raw != "" {
		for _, svc := range strings.Split(raw, ",") {
			if svc = strings.TrimSpace(svc); svc != "" {
				criteria.IncludedServices = append(criteria.IncludedServices, svc)
			}
		}
	}

	var candidates []artisan.Artisan
	if err := h.db.Preload("Reviews").
		Where("active = ? AND verified = ?", true, true).
		Find(&candidates).Error; err != nil {
		logger.Error("Failed to load artisans", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Search failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	matches := discovery.Filter(candidates, criteria)

	// Optional proximity filter on top of the criteria match.
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "lat and lng must be decimal degrees",
				Status:  fiber.StatusBadRequest,
			})
		}
		radius, err := strconv.ParseFloat(c.Query("radius", "50"), 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "radius must be a number of kilometers",
				Status:  fiber.StatusBadRequest,
			})
		}
		ref := &address.AddressType{Lat: lat, Lng: lng}
		matches = geo.Nearby(ref, matches, radius)
	}

	pageItems, totalPages := discovery.Paginate(matches, page)
	metrics.DiscoverySearches.Inc()

	return c.Status(fiber.StatusOK).JSON(types.ArtisanPageResponse{
		ArtisanItems:      pageItems,
		TotalArtisanItems: int64(len(matches)),
		CurrentPage:       page,
		TotalPages:        totalPages,
		Success:           true,
	})
}

// Show returns a single artisan with reviews.
func (h *ArtisanController) Show(c *fiber.Ctx) error {
	username := c.Params("username")

	var account artisan.Artisan
	if err := h.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Artisan not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch artisan",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Artisan fetched successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

// Update applies profile changes to an artisan account. Only the owner
// or an admin may update.
func (h *ArtisanController) Update(c *fiber.Ctx) error {
	username := c.Params("username")

	caller, _ := middleware.UsernameFromCtx(c)
	callerRole, _ := middleware.RoleFromCtx(c)
	if callerRole != role.Admin && caller != username {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
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

	var account artisan.Artisan
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Message: "Artisan not found",
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
		updates["artisan_image"] = *req.UserImage
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "Nothing to update",
			Status:  fiber.StatusOK,
			Data:    account,
		})
	}

	if err := h.db.Model(&account).Updates(updates).Error; err != nil {
		logger.Error("Failed to update artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update artisan",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Artisan updated: " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Artisan updated successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

// UpdatePassword changes the artisan's own password.
func (h *ArtisanController) UpdatePassword(c *fiber.Ctx) error {
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

	var account artisan.Artisan
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

	logger.Success("Password updated for artisan " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Password updated successfully",
		Status:  fiber.StatusOK,
	})
}

// Delete removes an artisan account. Admin only.
func (h *ArtisanController) Delete(c *fiber.Ctx) error {
	username := c.Params("username")

	var account artisan.Artisan
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Artisan not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to delete artisan",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.db.Delete(&account).Error; err != nil {
		logger.Error("Failed to delete artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to delete artisan",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Artisan deleted: " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Artisan deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// AddRating records a review against an artisan. The caller must have a
// completed, not-yet-reviewed order with this artisan; the artisan's
// mean rating is recomputed in the same transaction.
func (h *ArtisanController) AddRating(c *fiber.Ctx) error {
	artisanUsername := c.Params("username")

	reviewer, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req types.ReviewRequest
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
	if err := h.db.Where("username = ?", artisanUsername).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Artisan not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to submit review",
			Status:  fiber.StatusInternalServerError,
		})
	}

	// Reviews are gated on a completed order the caller placed and has
	// not reviewed yet.
	var order booking.Order
	err := h.db.Where(
		"booked_by = ? AND artisan_username = ? AND state = ? AND reviewed = ?",
		reviewer, artisanUsername, booking.StateCompleted, false,
	).Order("updated_at DESC").First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Only customers with a completed order can leave a review",
				Status:  fiber.StatusForbidden,
			})
		}
		logger.Error("Failed to look up order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to submit review",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !order.Reviewable(reviewer) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Order is not reviewable",
			Status:  fiber.StatusForbidden,
		})
	}

	newReview := review.Review{
		ArtisanID: account.ID,
		Username:  reviewer,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("reviewed", true).Error; err != nil {
			return err
		}

		// Recompute the mean over all reviews, this one included.
		var mean float64
		if err := tx.Model(&review.Review{}).
			Where("artisan_id = ?", account.ID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&mean).Error; err != nil {
			return err
		}
		return tx.Model(&account).Update("rating", mean).Error
	})
	if err != nil {
		logger.Error("Failed to submit review", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to submit review",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	metrics.ReviewsSubmitted.Inc()

	logger.Success("Review submitted for " + artisanUsername + " by " + reviewer)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Review submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    newReview,
	})
}

// KycVerify marks an artisan as verified, letting them surface in
// discovery. Admin only.
func (h *ArtisanController) KycVerify(c *fiber.Ctx) error {
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

	var account artisan.Artisan
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Artisan not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up artisan", err)
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
		logger.Error("Failed to verify artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Verification failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Artisan verified: " + username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Artisan verified successfully",
		Status:  fiber.StatusOK,
	})
}
