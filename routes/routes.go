package routes

import (
	"net/http"
	"time"

	"medsync/handlers"
	"medsync/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers schedule and shift endpoints.
func RegisterScheduleRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	api := r.Group("/api/schedule")
	{
		api.GET("", h.GetScheduleHandler)
		api.POST("/refresh", h.RefreshScheduleHandler)
		api.GET("/date/:date", h.GetScheduleForDateHandler)
		api.POST("/save", h.SaveScheduleHandler)
		api.POST("/recurring", h.SaveRecurringHandler)
	}

	shifts := r.Group("/api/shifts")
	{
		shifts.POST("", h.AddShiftHandler)
		shifts.GET("/pending", h.GetPendingShiftsHandler)
		shifts.DELETE("/pending", h.ClearPendingShiftsHandler)
	}

	r.PATCH("/api/slots/:slotID", h.UpdateSlotHandler)
}

// RegisterTaskRoutes registers task endpoints.
func RegisterTaskRoutes(r *gin.Engine, h *handlers.TaskHandler) {
	api := r.Group("/api/tasks")
	{
		api.GET("", h.ListTasksHandler)
		api.POST("", h.AddTaskHandler)
		api.DELETE("/:taskID", h.RemoveTaskHandler)
		api.POST("/sync-appointments", h.SyncAppointmentsHandler)
	}
}

// RegisterSessionRoutes registers session and device endpoints.
func RegisterSessionRoutes(r *gin.Engine, h *handlers.SessionHandler) {
	api := r.Group("/api/session")
	{
		api.GET("", h.GetSessionHandler)
		api.PUT("", h.SaveSessionHandler)
		api.DELETE("", h.ClearSessionHandler)
		api.PUT("/device", h.RegisterDeviceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, scheduleH *handlers.ScheduleHandler, taskH *handlers.TaskHandler, sessionH *handlers.SessionHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, scheduleH)
	RegisterTaskRoutes(r, taskH)
	RegisterSessionRoutes(r, sessionH)
	RegisterHealthRoute(r)
}
