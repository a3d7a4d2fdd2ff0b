// @title Report Backend API
// @version 1.0
// @description Per-user test reports and standalone results.

// @host localhost:5000
// @BasePath /

package main

import (
	"flag"
	"log"
	"report_backend/internal/app"
	"report_backend/internal/config"
	"report_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg, *configDir)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}
