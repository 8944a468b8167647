package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aipipeline/internal/handlers"
	"aipipeline/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	dealHandler *handlers.DealHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	aiHandler *handlers.AIHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// ---- protected
	api := r.Group("/api", middleware.AuthMiddleware(jwtSecret))

	deals := api.Group("/deals")
	{
		deals.POST("", dealHandler.Create)
		deals.GET("", dealHandler.List)
		deals.GET("/:id", dealHandler.GetByID)
		deals.PUT("/:id", dealHandler.Update)
		deals.PATCH("/:id/stage", dealHandler.UpdateStage)
		deals.DELETE("/:id", dealHandler.Delete)
		deals.POST("/:id/activities", dealHandler.AddActivity)
	}

	an := api.Group("/analytics")
	{
		an.GET("/dashboard", analyticsHandler.Dashboard)
		an.GET("/report", analyticsHandler.Report)
	}

	ai := api.Group("/ai")
	{
		ai.POST("/ask", aiHandler.Ask)
	}

	return r
}
