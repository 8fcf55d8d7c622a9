package routes

import (
	"table-reservation/controllers/auth"
	"table-reservation/controllers/merchant"
	"table-reservation/controllers/reservation"
	"table-reservation/controllers/settings"
	"table-reservation/controllers/store"
	"table-reservation/controllers/timeslot"
	"table-reservation/logger"
	"table-reservation/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	reservationController := reservation.NewReservationController(db, asyncLogger)
	merchantController := merchant.NewReservationController(db, asyncLogger)
	timeSlotController := timeslot.NewTimeSlotController(db, asyncLogger)
	settingsController := settings.NewSettingsController(db, asyncLogger)
	storeController := store.NewStoreController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "table-reservation", "status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Get("/stores", storeController.Index)
	api.Get("/stores/:id", storeController.Show)
	api.Get("/time-slots", timeSlotController.PublicIndex)

	/*=============================================================================
	| Account Routes
	===============================================================================*/
	account := api.Group("/auth").Use(middleware.RequireAuth())
	account.Get("/profile", authController.Profile)
	account.Post("/logout", authController.Logout)

	/*=============================================================================
	| Customer Reservation Routes (members and unauthenticated guests)
	===============================================================================*/
	reservations := api.Group("/reservations").Use(middleware.OptionalAuth())
	reservations.Post("/", reservationController.Store)
	reservations.Post("/verify-guest", reservationController.VerifyGuest)
	reservations.Get("/", reservationController.Index)
	reservations.Patch("/:id", reservationController.Update)
	reservations.Post("/:id/cancel", reservationController.Cancel)
	reservations.Get("/:id/change-logs", reservationController.ChangeLogs)

	/*=============================================================================
	| Merchant Routes
	===============================================================================*/
	merchantGroup := api.Group("/merchant").Use(middleware.RequireMerchant())

	merchantGroup.Get("/reservations", merchantController.Index)
	merchantGroup.Get("/reservations/stats", merchantController.Stats)
	merchantGroup.Post("/reservations/:id/update-status", merchantController.UpdateStatus)
	merchantGroup.Post("/reservations/:id/cancel", merchantController.Cancel)
	merchantGroup.Get("/reservations/:id/change-logs", merchantController.ChangeLogs)
	merchantGroup.Delete("/reservations/:id", merchantController.Destroy)

	merchantGroup.Get("/time-slots", timeSlotController.Index)
	merchantGroup.Post("/time-slots", timeSlotController.Store)
	merchantGroup.Put("/time-slots/:id", timeSlotController.Update)
	merchantGroup.Delete("/time-slots/:id", timeSlotController.Destroy)

	merchantGroup.Get("/settings", settingsController.Show)
	merchantGroup.Put("/settings", settingsController.Update)
}
