package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timetrack/backend/internal/handler"
	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	activityHandler *handler.ActivityHandler,
	bookingHandler *handler.BookingHandler,
	analysisHandler *handler.AnalysisHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/reset-password", authHandler.ResetPassword)

	user := api.Group("/user")
	user.Use(middleware.Auth(authService))
	user.PUT("", authHandler.ChangeUser)
	user.DELETE("", authHandler.DeleteUser)

	activities := api.Group("/activities")
	activities.Use(middleware.Auth(authService))
	activities.GET("", activityHandler.List)
	activities.POST("", activityHandler.Add)
	activities.PUT("/:id", activityHandler.Change)
	activities.DELETE("/:id", activityHandler.Delete)

	bookings := api.Group("/bookings")
	bookings.Use(middleware.Auth(authService))
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Add)
	bookings.PUT("/:id", bookingHandler.Change)
	bookings.POST("/:id/split", bookingHandler.Split)
	bookings.DELETE("/:id", bookingHandler.Delete)

	analysis := api.Group("/analysis")
	analysis.Use(middleware.Auth(authService))
	analysis.GET("/hours", analysisHandler.Hours)
	analysis.GET("/projects", analysisHandler.Projects)
	analysis.GET("/activities", analysisHandler.Activities)

	return engine
}
