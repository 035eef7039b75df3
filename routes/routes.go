package routes

import (
	"net/http"
	"time"

	"brokerbook/handlers"
	"brokerbook/middleware"
	"brokerbook/services/identity"
	"brokerbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterBrokerRoutes registers the public broker endpoints and the
// broker's own profile, calendar and appointment list.
func RegisterBrokerRoutes(r *gin.Engine, hb *handlers.HandlerBundle, verifier identity.Verifier) {
	api := r.Group("/api/brokers")
	{
		api.GET("", hb.SearchBrokers)
		api.GET("/:id", hb.GetBroker)
		api.GET("/:id/slots", hb.GetBrokerSlots)
		api.GET("/:id/availability", hb.GetBrokerAvailability)

		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(verifier), middleware.BrokerOnly())
		me.PUT("", hb.UpsertMyProfile)
		me.PUT("/availability", hb.SaveMyAvailability)
		me.GET("/appointments", hb.ListMyBrokerAppointments)
	}
}

// RegisterAppointmentRoutes registers booking and lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, verifier identity.Verifier) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware(verifier))
		api.POST("", middleware.ClientOnly(), hb.BookAppointment)
		api.GET("/mine", middleware.ClientOnly(), hb.ListMyAppointments)
		api.PATCH("/:id/confirm", middleware.BrokerOnly(), hb.ConfirmAppointment)
		api.PATCH("/:id/cancel", hb.CancelAppointment)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, verifier identity.Verifier) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "traceparent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBrokerRoutes(r, hb, verifier)
	RegisterAppointmentRoutes(r, hb, verifier)
}
