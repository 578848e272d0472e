package routes

import (
	"SanteSenegal/cache"
	"SanteSenegal/config"
	"SanteSenegal/controllers"
	"SanteSenegal/database"
	"SanteSenegal/handlers"
	"SanteSenegal/middlewares"
	"SanteSenegal/repositories"
	"SanteSenegal/services"
	"SanteSenegal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles the service instances the background scheduler shares
// with the HTTP layer.
type Services struct {
	Calendar     *services.CalendarService
	Availability *services.AvailabilityService
	Appointments *services.AppointmentService
}

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig) (http.Handler, *Services) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.santesenegal.sn"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	directoryRepo := repositories.NewDirectoryRepository()
	holidayRepo := repositories.NewHolidayRepository(cache)
	absenceRepo := repositories.NewAbsenceRepository()
	availabilityRepo := repositories.NewAvailabilityRepository()
	slotRepo := repositories.NewSlotRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository()

	calendarService := services.NewCalendarService(holidayRepo, config.HolidayAPIBaseURL, config.HolidayCountryCode)
	directoryService := services.NewDirectoryService(directoryRepo)
	availabilityService := services.NewAvailabilityService(availabilityRepo, absenceRepo, directoryRepo, calendarService)
	absenceService := services.NewAbsenceService(absenceRepo, directoryRepo, availabilityService)
	slotService := services.NewSlotService(slotRepo, availabilityRepo, absenceRepo, directoryRepo, calendarService)
	appointmentService := services.NewAppointmentService(
		appointmentRepo, slotRepo, directoryRepo, availabilityService,
		database.RedisLocker{}, utils.NewEmailNotifierFromEnv())

	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	absenceHandler := handlers.NewAbsenceHandler(absenceService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	slotHandler := handlers.NewSlotHandler(slotService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	// Register routes
	controllers.SetupSchedulingRoutes(
		router,
		directoryHandler,
		calendarHandler,
		absenceHandler,
		availabilityHandler,
		slotHandler,
		appointmentHandler,
	)

	controllers.SetupRootRoute(router)

	return router, &Services{
		Calendar:     calendarService,
		Availability: availabilityService,
		Appointments: appointmentService,
	}
}
