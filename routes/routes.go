package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chalet-backend/controllers"
	"chalet-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AvailabilityController,
	pc *controllers.PricingController,
	hc *controllers.HoldController,
	bc *controllers.BookingController,
	blc *controllers.BlockageController,
	rc *controllers.RateController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Edit-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/availability", ac.GetAvailability)

		price := api.Group("/price")
		{
			price.POST("/preview", pc.PreviewPrice)
		}

		holds := api.Group("/holds")
		{
			holds.POST("", hc.CreateHold)
			holds.DELETE("/:id", hc.DeleteHold)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CommitBooking)
			bookings.GET("/by-token/:token", bc.GetBookingByToken)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		blockages := api.Group("/blockages")
		{
			blockages.GET("", blc.GetBlockages)
			blockages.POST("", blc.CreateBlockage)
			blockages.DELETE("/:id", blc.DeleteBlockage)
		}

		rates := api.Group("/rates")
		{
			rates.GET("", rc.GetRates)
			rates.PUT("", rc.UpdateRates)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/chalet", controllers.GetChaletSettings)
			settings.PUT("/chalet", controllers.UpdateChaletSettings)
		}
	}

	return r
}
