package routes

import (
	"nutritrack/controllers"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	inferSvc := services.NewInferenceService()
	mealSvc := services.NewMealService(db)
	captureSvc := services.NewCaptureService(inferSvc, mealSvc)
	medSvc := services.NewMedicineService(db)
	assistant := services.NewAssistantService()

	captureCtl := controllers.NewCaptureController(captureSvc, hub)
	mealCtl := controllers.NewMealController(mealSvc)
	medCtl := controllers.NewMedicineController(medSvc)
	chatCtl := controllers.NewChatController(assistant)
	rtCtl := controllers.NewRealtimeController(hub)

	capture := r.Group("/capture")
	{
		capture.POST("/image", captureCtl.SubmitImage)
		capture.POST("/quick", captureCtl.SubmitQuick)
		capture.POST("/text", captureCtl.SubmitDetailed)
		capture.POST("/confirm", captureCtl.Confirm)
		capture.POST("/cancel", captureCtl.Cancel)
		capture.GET("/state", captureCtl.State)
	}

	meal := r.Group("/meal")
	{
		meal.GET("", mealCtl.ListToday)
		meal.POST("", mealCtl.Create)
		meal.GET("/summary", mealCtl.SummaryToday)
	}

	medicine := r.Group("/medicine")
	{
		medicine.GET("", medCtl.List)
		medicine.POST("", medCtl.Create)
		medicine.GET("/next", medCtl.Next)
		medicine.GET("/:id", medCtl.Get)
		medicine.PATCH("/:id/take", medCtl.Take)
		medicine.DELETE("/:id", medCtl.Delete)
	}

	r.POST("/nutrition-chat", chatCtl.Ask)
	r.GET("/ws/alerts", rtCtl.AlertsWS)

	return r
}
