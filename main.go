// @title PD Assessment Portal API
// @version 1.0
// @description Assessment portal for physical design engineers: topic-based
// @description question sets, keyword-driven auto scoring and admin review.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/app"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/configwatcher"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig(*configDir+"/config.yaml", application.ApplyConfig)

	application.Run()
}
