package booking

import (
	"errors"
	"fmt"
	"time"

	"bluecollar/logger"
	"bluecollar/metrics"
	"bluecollar/middleware"
	"bluecollar/models/artisan"
	"bluecollar/models/booking"
	"bluecollar/models/role"
	"bluecollar/models/user"
	"bluecollar/services/discovery"
	"bluecollar/types"
	"bluecollar/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type BookingController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{db: db, loggerInstance: asyncLogger}
}

// errArtisanBooked reports a lost claim race: the artisan was free at
// precondition time but taken by the time the transaction ran.
var errArtisanBooked = errors.New("artisan is already booked")

// claimArtisan flips the artisan's booked flag, but only if it is still
// clear. Two concurrent orders against the same artisan both pass the
// precondition read; only the claim that lands first wins.
func claimArtisan(tx *gorm.DB, artisanID uint) error {
	res := tx.Model(&artisan.Artisan{}).
		Where("id = ? AND booked = ?", artisanID, false).
		Update("booked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errArtisanBooked
	}
	return nil
}

// Index lists booking orders scoped to the caller: users see orders
// they placed, artisans see orders addressed to them, admins see all.
func (h *BookingController) Index(c *fiber.Ctx) error {
	page := utils.ParsePage(c)

	caller, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}
	callerRole, _ := middleware.RoleFromCtx(c)

	query := h.db.Model(&booking.Order{})
	switch callerRole {
	case role.User:
		query = query.Where("booked_by = ?", caller)
	case role.Artisan:
		query = query.Where("artisan_username = ?", caller)
	case role.Admin:
		// Admins see the full order book.
	}

	if stateStr := c.Query("state"); stateStr != "" {
		switch stateStr {
		case "pending":
			query = query.Where("state = ?", booking.StatePending)
		case "completed":
			query = query.Where("state = ?", booking.StateCompleted)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: fmt.Sprintf("unknown state %q", stateStr),
				Status:  fiber.StatusBadRequest,
			})
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list orders",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var orders []booking.Order
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * discovery.ItemsPerPage).
		Limit(discovery.ItemsPerPage).
		Find(&orders).Error; err != nil {
		logger.Error("Failed to list orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to list orders",
			Status:  fiber.StatusInternalServerError,
		})
	}

	totalPages := int((total + discovery.ItemsPerPage - 1) / discovery.ItemsPerPage)

	return c.Status(fiber.StatusOK).JSON(types.OrderPageResponse{
		OrderItems:      orders,
		TotalOrderItems: total,
		CurrentPage:     page,
		TotalPages:      totalPages,
		Success:         true,
	})
}

// Show returns a single order. Only the booking customer, the addressed
// artisan or an admin may view it.
func (h *BookingController) Show(c *fiber.Ctx) error {
	id := c.Params("id")

	caller, _ := middleware.UsernameFromCtx(c)
	callerRole, _ := middleware.RoleFromCtx(c)

	var order booking.Order
	if err := h.db.Where("public_id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if callerRole != role.Admin && order.BookedBy != caller && order.ArtisanUsername != caller {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order fetched successfully",
		Status:  fiber.StatusOK,
		Data:    order,
	})
}

// Store creates a booking order for the caller against an artisan. The
// artisan must be free, the caller active, the booking date at least an
// hour out and the service address long enough to be usable. The
// artisan is marked booked in the same transaction.
func (h *BookingController) Store(c *fiber.Ctx) error {
	caller, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req types.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(time.Now()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var customer user.User
	if err := h.db.Where("username = ?", caller).First(&customer).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Account not found",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if !customer.Active {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Account is deactivated",
			Status:  fiber.StatusForbidden,
		})
	}

	var provider artisan.Artisan
	if err := h.db.Where("public_id = ?", req.ArtisanID).First(&provider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Artisan not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up artisan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !provider.Discoverable() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Artisan is not available for booking",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if provider.Booked {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Artisan is already booked",
			Status:  fiber.StatusConflict,
		})
	}

	order := booking.Order{
		PublicID:        uuid.NewString(),
		BookedBy:        customer.Username,
		CustomerName:    customer.FullName(),
		CustomerPhone:   customer.Phone,
		UserLocation:    customer.Location,
		ArtisanID:       provider.ID,
		ArtisanUsername: provider.Username,
		ArtisanFullName: provider.FullName(),
		ArtisanPhone:    provider.Phone,
		ServiceType:     req.ServiceType,
		CustomerAddress: req.CustomerAddress,
		Description:     req.Description,
		BookingDate:     req.BookingDate,
		State:           booking.StatePending,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := claimArtisan(tx, provider.ID); err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, errArtisanBooked) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Message: "Artisan is already booked",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to create order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	metrics.BookingsCreated.Inc()

	logger.Success("Order created: " + order.PublicID + " by " + caller)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Order created successfully",
		Status:  fiber.StatusCreated,
		Data:    order,
	})
}

// Close transitions an order to completed and frees the artisan. Only
// the booking customer or an admin may close; artisans cannot.
func (h *BookingController) Close(c *fiber.Ctx) error {
	id := c.Params("id")

	caller, ok := middleware.UsernameFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}
	callerRole, _ := middleware.RoleFromCtx(c)

	var order booking.Order
	if err := h.db.Where("public_id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to close order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := order.Close(callerRole, caller); err != nil {
		status := fiber.StatusForbidden
		if errors.Is(err, booking.ErrAlreadyCompleted) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  status,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("state", order.State).Error; err != nil {
			return err
		}
		return tx.Model(&artisan.Artisan{}).
			Where("id = ?", order.ArtisanID).
			Update("booked", false).Error
	})
	if err != nil {
		logger.Error("Failed to close order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to close order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	metrics.BookingsClosed.Inc()

	logger.Success("Order closed: " + order.PublicID + " by " + caller)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order closed successfully",
		Status:  fiber.StatusOK,
		Data:    order,
	})
}

// Delete removes an order outright. Admin only; a pending order frees
// its artisan on the way out.
func (h *BookingController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var order booking.Order
	if err := h.db.Where("public_id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to delete order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if order.State == booking.StatePending {
			if err := tx.Model(&artisan.Artisan{}).
				Where("id = ?", order.ArtisanID).
				Update("booked", false).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		logger.Error("Failed to delete order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to delete order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Order deleted: " + order.PublicID)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// Stats summarizes the order book for the admin dashboard: totals per
// state plus counts bucketed per day for the current week.
func (h *BookingController) Stats(c *fiber.Ctx) error {
	var pending, completed int64
	if err := h.db.Model(&booking.Order{}).
		Where("state = ?", booking.StatePending).Count(&pending).Error; err != nil {
		logger.Error("Failed to count pending orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to compute stats",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if err := h.db.Model(&booking.Order{}).
		Where("state = ?", booking.StateCompleted).Count(&completed).Error; err != nil {
		logger.Error("Failed to count completed orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to compute stats",
			Status:  fiber.StatusInternalServerError,
		})
	}

	weekStart := now.BeginningOfWeek()
	daily := make([]fiber.Map, 0, 7)
	for i := 0; i < 7; i++ {
		dayStart := weekStart.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var count int64
		if err := h.db.Model(&booking.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Count(&count).Error; err != nil {
			logger.Error("Failed to bucket daily orders", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to compute stats",
				Status:  fiber.StatusInternalServerError,
			})
		}
		daily = append(daily, fiber.Map{
			"day":    dayStart.Format("2006-01-02"),
			"orders": count,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Stats computed successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"pending":   pending,
			"completed": completed,
			"total":     pending + completed,
			"thisWeek":  daily,
		},
	})
}
