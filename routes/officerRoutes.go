package routes

import (
	"crimewatch-be/controllers"
	"crimewatch-be/middlewares"
	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
)

func OfficerRoutes(r *gin.Engine, oc *controllers.OfficerController, tokens *utils.TokenService) {
	officer := r.Group("/api/officer")
	officer.Use(middlewares.AuthMiddleware(tokens), middlewares.RequireRole(models.RoleOfficer, models.RoleAdmin))
	{
		officer.GET("/me", oc.Me)
		officer.PUT("/me", oc.UpdateMe)

		officer.GET("/cases", oc.Cases)
		officer.GET("/cases/:id", oc.CaseByID)
		officer.PUT("/cases/:id/update", oc.UpdateCase)

		officer.GET("/team", oc.Team)
		officer.GET("/incidents", oc.Incidents)

		officer.POST("/send_alert", oc.SendAlert)
		officer.GET("/alerts", oc.Alerts)

		officer.POST("/firs", oc.CreateFIR)
		officer.GET("/firs", oc.ListFIRs)
		officer.GET("/firs/:id", oc.GetFIR)
		officer.PUT("/firs/:id", oc.UpdateFIR)
		officer.DELETE("/firs/:id", oc.DeleteFIR)

		officer.POST("/evidence", oc.UploadEvidence)
		officer.GET("/evidence", oc.ListEvidence)
		officer.GET("/evidence/:id/download", oc.DownloadEvidence)
		officer.DELETE("/evidence/:id", oc.DeleteEvidence)
	}
}
