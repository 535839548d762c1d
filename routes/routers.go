package routes

import (
	"pousada/constants"
	"pousada/controllers"
	_ "pousada/docs"
	middlewares "pousada/middleware"
	"pousada/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the HTTP layer is built from
type Dependencies struct {
	Auth               *services.AuthService
	Establishments     *services.EstablishmentService
	AccommodationTypes *services.AccommodationTypeService
	Accommodations     *services.AccommodationService
	Availability       *services.AvailabilityService
	Clients            *services.ClientService
	Addons             *services.AddonService
	Reservations       *services.ReservationService
	ReservationAddons  *services.ReservationAddonService
	Payments           *services.PaymentService
	Receipts           *services.ReceiptService
	Dashboard          *services.DashboardService
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middlewares.SessionMiddleware(), middlewares.ErrorHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authController := controllers.NewAuthController(deps.Auth)
	establishmentController := controllers.NewEstablishmentController(deps.Establishments)
	accommodationController := controllers.NewAccommodationController(controllers.AccommodationControllerOptions{
		Accommodations: deps.Accommodations,
		Types:          deps.AccommodationTypes,
		Availability:   deps.Availability,
	})
	clientController := controllers.NewClientController(deps.Clients)
	addonController := controllers.NewAddonController(deps.Addons)
	reservationController := controllers.NewReservationController(controllers.ReservationControllerOptions{
		Reservations: deps.Reservations,
		Addons:       deps.ReservationAddons,
	})
	paymentController := controllers.NewPaymentController(controllers.PaymentControllerOptions{
		Payments: deps.Payments,
		Receipts: deps.Receipts,
	})
	dashboardController := controllers.NewDashboardController(deps.Dashboard)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authController.Login)

	authed := v1.Group("", middlewares.AuthMiddleware(deps.Auth))
	authed.GET("/auth/verify", authController.Verify)
	authed.DELETE("/auth/logout", authController.Logout)
	authed.GET("/dashboard/summary", dashboardController.Summary)

	staff := middlewares.RoleMiddleware(constants.RoleAdmin, constants.RoleManager)

	authed.GET("/establishments", establishmentController.List)
	authed.GET("/establishments/:id", establishmentController.Get)
	authed.POST("/establishments", staff, establishmentController.Create)
	authed.PUT("/establishments/:id", staff, establishmentController.Update)
	authed.DELETE("/establishments/:id", staff, establishmentController.Delete)

	authed.GET("/accommodation-types", accommodationController.ListTypes)
	authed.GET("/accommodation-types/:id", accommodationController.GetType)
	authed.POST("/accommodation-types", staff, accommodationController.CreateType)
	authed.PUT("/accommodation-types/:id", staff, accommodationController.UpdateType)
	authed.DELETE("/accommodation-types/:id", staff, accommodationController.DeleteType)

	authed.GET("/accommodations", accommodationController.List)
	authed.GET("/accommodations/:id", accommodationController.Get)
	authed.GET("/accommodations/:id/availability", accommodationController.Availability)
	authed.POST("/accommodations", staff, accommodationController.Create)
	authed.PUT("/accommodations/:id", staff, accommodationController.Update)
	authed.DELETE("/accommodations/:id", staff, accommodationController.Delete)

	clients := authed.Group("/clients", staff)
	clients.GET("", clientController.List)
	clients.GET("/suggest", clientController.Suggest)
	clients.GET("/:id", clientController.Get)
	clients.POST("", clientController.Create)
	clients.PUT("/:id", clientController.Update)
	clients.DELETE("/:id", clientController.Delete)

	authed.GET("/addons", addonController.List)
	authed.GET("/addons/:id", addonController.Get)
	authed.POST("/addons", staff, addonController.Create)
	authed.PUT("/addons/:id", staff, addonController.Update)
	authed.DELETE("/addons/:id", staff, addonController.Delete)

	reservations := authed.Group("/reservations")
	reservations.GET("", reservationController.List)
	reservations.GET("/history", reservationController.History)
	reservations.GET("/:id", reservationController.Get)
	reservations.POST("", reservationController.Create)
	reservations.PUT("/:id", reservationController.Update)
	reservations.DELETE("/:id", reservationController.Delete)
	reservations.GET("/:id/addons", reservationController.ListAddons)
	reservations.POST("/:id/addons/:addonId", reservationController.AddAddon)
	reservations.PUT("/:id/addons/:addonId", reservationController.UpdateAddon)
	reservations.DELETE("/:id/addons/:addonId", reservationController.RemoveAddon)

	payments := authed.Group("/payments", staff)
	payments.GET("", paymentController.List)
	payments.GET("/:id", paymentController.Get)
	payments.POST("", paymentController.Create)
	payments.PUT("/:id", paymentController.Update)
	payments.DELETE("/:id", paymentController.Delete)
	payments.POST("/:id/receipt", paymentController.UploadReceipt)
}
