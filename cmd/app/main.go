package main

import (
	"taskpad/config"
	"taskpad/di"
	"taskpad/shared/logger"
)

// @title Taskpad API
// @version 1.0
// @description Todo service with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
