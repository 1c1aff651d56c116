package routes

import (
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, tokens *utils.TokenService) {
	api := r.Group("/api")
	{
		api.POST("/register/:role", ac.Register)
		api.POST("/login", ac.Login)
	}

	authed := r.Group("/api")
	authed.Use(middlewares.AuthMiddleware(tokens))
	{
		authed.GET("/me", ac.Me)
		authed.GET("/profile/:user_id", ac.Profile)
	}
}
