package routes

import (
	"os"

	artisanController "bluecollar/controllers/artisan"
	authController "bluecollar/controllers/auth"
	bookingController "bluecollar/controllers/booking"
	placeController "bluecollar/controllers/place"
	userController "bluecollar/controllers/user"
	httpServices "bluecollar/httpServices/places"
	"bluecollar/logger"
	"bluecollar/metrics"
	"bluecollar/middleware"
	"bluecollar/models/role"
	servicesAuth "bluecollar/services/auth"
	"bluecollar/services/session"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	placesClient := httpServices.NewClient(os.Getenv("PLACES_BASE_URL"), os.Getenv("PLACES_API_KEY"))
	sessions := session.NewStore(rdb, servicesAuth.TokenTTL)
	asyncLogger := logger.NewAsyncLogger(db)

	auth := authController.NewAuthController(db, sessions, asyncLogger)
	users := userController.NewUserController(db, sessions, asyncLogger)
	artisans := artisanController.NewArtisanController(db, asyncLogger)
	bookings := bookingController.NewBookingController(db, asyncLogger)
	places := placeController.NewPlaceController(placesClient, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Health and metrics
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", auth.UserSignup)
	authGroup.Post("/login", auth.UserLogin)
	authGroup.Get("/logout", middleware.RequireAuthentication(), auth.Logout)

	artisanAuthGroup := api.Group("/artisan-auth")
	artisanAuthGroup.Post("/signup", auth.ArtisanSignup)
	artisanAuthGroup.Post("/login", auth.ArtisanLogin)
	artisanAuthGroup.Get("/logout", middleware.RequireAuthentication(), auth.Logout)

	/*=============================================================================
	| User Routes
	===============================================================================*/
	userGroup := api.Group("/users")
	userGroup.Get("/", middleware.RequireAccountManager(), users.List)
	userGroup.Get("/profile", middleware.RequireAuthentication(), users.Profile)
	userGroup.Put("/update-profile", middleware.RequireRoles(role.User, role.Admin), users.UpdateProfile)
	userGroup.Put("/update-password", middleware.RequireRoles(role.User, role.Admin), users.UpdatePassword)
	userGroup.Post("/kyc-verify/:username", middleware.RequireAccountManager(), users.KycVerify)

	/*=============================================================================
	| Artisan Routes
	===============================================================================*/
	artisanGroup := api.Group("/artisan").Use(middleware.RequireAuthentication())
	artisanGroup.Get("/", artisans.Index)
	artisanGroup.Get("/search", artisans.Search)
	artisanGroup.Patch("/update/:username", middleware.RequireRoles(role.Artisan, role.Admin), artisans.Update)
	artisanGroup.Delete("/delete/:username", middleware.RequireAccountManager(), artisans.Delete)
	artisanGroup.Post("/ratings/add/:username", middleware.RequireRoles(role.User), artisans.AddRating)
	artisanGroup.Post("/kyc-verify/:username", middleware.RequireAccountManager(), artisans.KycVerify)
	artisanGroup.Get("/:username", artisans.Show)
	api.Put("/artisans/update-password", middleware.RequireRoles(role.Artisan), artisans.UpdatePassword)

	/*=============================================================================
	| Booking Order Routes
	===============================================================================*/
	orderGroup := api.Group("/booking-orders").Use(middleware.RequireAuthentication())
	orderGroup.Get("/", bookings.Index)
	orderGroup.Get("/stats", middleware.RequireAccountManager(), bookings.Stats)
	orderGroup.Post("/create", middleware.RequireRoles(role.User), bookings.Store)
	orderGroup.Patch("/close/:id", middleware.RequireOrderCloser(), bookings.Close)
	orderGroup.Delete("/delete/:id", middleware.RequireAccountManager(), bookings.Delete)
	orderGroup.Get("/:id", bookings.Show)

	/*=============================================================================
	| Geocoding Proxy
	===============================================================================*/
	api.Get("/place", middleware.RequireAuthentication(), places.Details)
}
