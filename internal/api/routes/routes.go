package routes

import (
	"net/http"
	"time"

	"bajaj-rental-api-server/config"
	"bajaj-rental-api-server/internal/api/handlers"
	"bajaj-rental-api-server/internal/api/middleware"
	"bajaj-rental-api-server/internal/booking"
	"bajaj-rental-api-server/internal/models"
	"bajaj-rental-api-server/internal/s3"
	"bajaj-rental-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers and route groups.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	bookingService *booking.Service,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db, Service: bookingService, S3Uploader: s3Uploader}
	bookingHandler := &handlers.BookingHandler{Service: bookingService}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"service":   "Bajaj Rental API",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		// Booking event stream for admin dashboards; auth happens inside
		// the handler because the token arrives as a query parameter.
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Authenticate(), authHandler.Me)
		}

		// Public catalog reads.
		vehicles := apiV1.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetAllVehicles)
			vehicles.GET("/available", vehicleHandler.GetAvailableVehicles)
		}

		// Catalog management, admin only. There is intentionally no route
		// that sets isAvailable directly: the booking service is the only
		// writer of that flag.
		adminVehicles := apiV1.Group("/vehicles")
		adminVehicles.Use(middleware.Authenticate())
		adminVehicles.Use(middleware.Authorize(models.RoleAdmin))
		{
			adminVehicles.POST("", vehicleHandler.CreateVehicle)
			adminVehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			adminVehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		// Booking routes need a caller identity; ownership and role rules
		// are enforced by the booking service itself.
		bookings := apiV1.Group("/bookings")
		bookings.Use(middleware.Authenticate())
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("/my", bookingHandler.MyBookings)
			bookings.GET("", bookingHandler.AllBookings)
			bookings.PATCH("/:id/status", bookingHandler.UpdateStatus)
			bookings.DELETE("/:id", bookingHandler.DeleteBooking)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "API endpoint not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	return router
}
