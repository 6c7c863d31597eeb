package main

import (
	"log"

	"github.com/ethanbaker/repogen/internal/api"
	"github.com/ethanbaker/repogen/internal/bootstrap"
	"github.com/ethanbaker/repogen/pkg/utils"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to initialize: %v", err)
	}
	defer app.Close()

	// Sweep stale runs in the background
	if err := app.Janitor.Start(); err != nil {
		log.Fatalf("[API-MAIN]: Failed to start janitor: %v", err)
	}
	defer app.Janitor.Stop()

	// Start
	api.Start(cfg, api.Services{
		Generator:    app.Generator,
		Runs:         app.Runs,
		Orchestrator: app.Orchestrator,
	})
}
