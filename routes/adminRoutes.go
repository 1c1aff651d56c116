package routes

import (
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine, ac *controllers.AdminController, tokens *utils.TokenService) {
	admin := r.Group("/api/admin")
	admin.Use(middlewares.AuthMiddleware(tokens), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", ac.ListUsers)
		admin.POST("/users", ac.CreateUser)
		admin.GET("/users/:id", ac.GetUser)
		admin.PUT("/users/:id", ac.UpdateUser)
		admin.DELETE("/users/:id", ac.DeleteUser)

		admin.GET("/cases", ac.ListCases)
		admin.POST("/cases", ac.CreateCase)
		admin.GET("/cases/:id", ac.GetCase)
		admin.PUT("/cases/:id", ac.UpdateCase)
		admin.DELETE("/cases/:id", ac.DeleteCase)

		admin.GET("/firs", ac.ListFIRs)
		admin.GET("/firs/:id", ac.GetFIR)
		admin.PUT("/firs/:id", ac.UpdateFIR)
		admin.DELETE("/firs/:id", ac.DeleteFIR)

		admin.GET("/alerts", ac.ListAlerts)
		admin.POST("/alerts", ac.CreateAlert)

		admin.GET("/stats", ac.Stats)
	}
}
