package main

import (
	"nutritrack/config"
	"nutritrack/routes"
	"nutritrack/services"
	"nutritrack/utils"
)

func main() {
	config.InitDB()
	utils.InitS3() // no-op unless S3_BUCKET is configured

	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub)

	r := routes.SetupRouter(config.DB, hub)
	r.Run(":8080")
}
