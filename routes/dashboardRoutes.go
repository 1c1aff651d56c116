package routes

import (
	"crimewatch-be/controllers"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine, dc *controllers.DashboardController) {
	r.GET("/api/dashboard/stats", dc.Stats)
}
