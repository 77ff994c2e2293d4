package main

import (
	"os"

	"github.com/eventum-io/eventum/cmd/eventum/cmd"
)

// @title Eventum API
// @version 1.0
// @description Event registration backend API
// @host localhost:8000
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
