package place

import (
	httpServices "bluecollar/httpServices/places"
	"bluecollar/logger"
	"bluecollar/types"
	"bluecollar/utils"

	"github.com/gofiber/fiber/v2"
)

type PlaceController struct {
	places         *httpServices.PlacesClient
	loggerInstance *logger.AsyncLogger
}

func NewPlaceController(places *httpServices.PlacesClient, asyncLogger *logger.AsyncLogger) *PlaceController {
	return &PlaceController{places: places, loggerInstance: asyncLogger}
}

// Details proxies a place-details lookup to the geocoding provider and
// returns the parsed address. The provider API key never reaches the
// client.
func (h *PlaceController) Details(c *fiber.Ctx) error {
	placeID := c.Query("placeId")
	if placeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "placeId query parameter is required",
			Status:  fiber.StatusBadRequest,
		})
	}

	addr, adrAddress, err := h.places.PlaceDetails(placeID)
	if err != nil {
		logger.Error("Place details lookup failed", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Message: "Failed to resolve place details",
			Status:  fiber.StatusBadGateway,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Place resolved successfully",
		Status:  fiber.StatusOK,
		Data: httpServices.PlaceDetails{
			Address:    addr,
			AdrAddress: adrAddress,
		},
	})
}
