package main

import "aipipeline/internal/app"

// @title           AI Pipeline API
// @version         1.0
// @description     Sales pipeline backend: deals, dashboard analytics and an AI assistant.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
