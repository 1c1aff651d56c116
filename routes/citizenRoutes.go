package routes

import (
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

func CitizenRoutes(r *gin.Engine, cc *controllers.CitizenController, tokens *utils.TokenService) {
	citizen := r.Group("/api/citizen")
	citizen.Use(middlewares.AuthMiddleware(tokens))
	{
		citizen.GET("/:citizen_id", cc.GetProfile)
		citizen.PUT("/:citizen_id", cc.UpdateProfile)
	}
}
