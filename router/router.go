package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Credential endpoints get the strict limiter
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.POST("/logout", userCtrl.Logout)
		authed.GET("/profile", userCtrl.GetProfile)
	}

	// Diner-facing reservation routes
	tables := r.Group("/tables")
	tables.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleUser))
	{
		tables.GET("", reservationCtrl.GetAvailableTables)
		tables.POST("/reserve/:table_ref", reservationCtrl.ReserveTable)
		tables.DELETE("/cancel", reservationCtrl.CancelReservation)
	}

	// Admin inventory routes
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PUT("/tables/:table_id", tableCtrl.UpdateTableCapacity)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	}

	return r
}
