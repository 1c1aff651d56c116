package routes

import (
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

// CaseRoutes wires the shared case endpoints. limiter throttles citizen
// report submissions and may be nil when Redis is not configured.
func CaseRoutes(r *gin.Engine, cc *controllers.CaseController, tokens *utils.TokenService, limiter gin.HandlerFunc) {
	cases := r.Group("/api/cases")
	cases.Use(middlewares.AuthMiddleware(tokens))
	{
		create := []gin.HandlerFunc{middlewares.RequireRole(models.RoleCitizen)}
		if limiter != nil {
			create = append(create, limiter)
		}
		create = append(create, cc.Create)
		cases.POST("", create...)

		cases.GET("", middlewares.RequireRole(models.RoleAdmin), cc.List)
		cases.GET("/citizen/:citizen_id", cc.CitizenCases)
		cases.GET("/:id", cc.GetByID)
		cases.PUT("/:id", cc.Update)
		cases.DELETE("/:id", cc.Delete)
	}
}
