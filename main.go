package main

import (
	"log"
	"net/http"

	"pousada/config"
	"pousada/jobs"
	"pousada/response"
	"pousada/routes"
	"pousada/services"
	"pousada/services/logger"
	"pousada/services/notification"

	"github.com/gin-gonic/gin"
)

// @title						Pousada API
// @version					1.0
// @description				Reservations, rooms and payments for multi-property guesthouses.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.ParseLevel(config.GetEnv("LOG_LEVEL")))
	response.SetLogger(appLogger)
	cache := services.NewCache(config.RedisClient)
	notifier := notification.NewMelodyService(m)
	counter := services.NewInventoryCounter(appLogger)
	machine := services.NewStatusMachine(counter)

	authService, err := services.NewAuthService(services.AuthServiceOptions{
		Secret: config.GetEnv("JWT_SECRET"),
		Cache:  cache,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Machine:  machine,
		Notifier: notifier,
		Cache:    cache,
	})
	paymentService := services.NewPaymentService(services.PaymentServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Machine:  machine,
		Notifier: notifier,
		Cache:    cache,
	})

	deps := routes.Dependencies{
		Auth: authService,
		Establishments: services.NewEstablishmentService(services.EstablishmentServiceOptions{
			DB:     config.DB,
			Logger: appLogger,
			Cache:  cache,
		}),
		AccommodationTypes: services.NewAccommodationTypeService(config.DB),
		Accommodations: services.NewAccommodationService(services.AccommodationServiceOptions{
			DB:      config.DB,
			Logger:  appLogger,
			Counter: counter,
			Machine: machine,
			Cache:   cache,
		}),
		Availability: services.NewAvailabilityService(config.DB),
		Clients:      services.NewClientService(config.DB),
		Addons:       services.NewAddonService(config.DB),
		Reservations: reservationService,
		ReservationAddons: services.NewReservationAddonService(services.ReservationAddonServiceOptions{
			DB:     config.DB,
			Logger: appLogger,
			Cache:  cache,
		}),
		Payments: paymentService,
		Receipts: services.NewReceiptService(paymentService, services.NewCloudinaryUploader(config.Cloudinary), appLogger),
		Dashboard: services.NewDashboardService(services.DashboardServiceOptions{
			DB:     config.DB,
			Logger: appLogger,
			Cache:  cache,
		}),
	}

	if err := jobs.InitCronJobs(c, jobs.Options{
		Reconciler:    services.NewReconciler(config.DB, appLogger),
		Completer:     reservationService,
		Notifier:      notifier,
		Logger:        appLogger,
		ReconcileSpec: config.GetEnv("RECONCILE_CRON"),
		CompleteSpec:  config.GetEnv("COMPLETE_CRON"),
	}); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, deps)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := config.GetEnvDefault("PORT", "8083")

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
