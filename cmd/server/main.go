package main

import (
	"fmt"
	"log"
	"os"

	"github.com/caloriehawk/backend/config"
	httpDelivery "github.com/caloriehawk/backend/internal/delivery/http"
	"github.com/caloriehawk/backend/internal/infrastructure/calorieninjas"
	"github.com/caloriehawk/backend/internal/infrastructure/fdc"
	"github.com/caloriehawk/backend/internal/infrastructure/fetch"
	"github.com/caloriehawk/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CalorieHawk Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Outbound transports with bounded retries. The simple flow runs on
	// the shorter per-attempt timeout, the detailed flow on the longer one.
	fetchSimple := fetch.New(cfg.HTTP.MaxRetries, cfg.HTTP.BackoffBase, cfg.HTTP.SimpleTimeout)
	fetchDetailed := fetch.New(cfg.HTTP.MaxRetries, cfg.HTTP.BackoffBase, cfg.HTTP.DetailedTimeout)

	// Provider adapters.
	ninjas := calorieninjas.NewClient(cfg.CalorieNinjas.APIKey, cfg.CalorieNinjas.BaseURL, fetchSimple)
	fdcQuick := fdc.NewClient(cfg.FDC.APIKey, cfg.FDC.BaseURL, fetchSimple)
	fdcDetailed := fdc.NewClient(cfg.FDC.APIKey, cfg.FDC.BaseURL, fetchDetailed)

	if ninjas.Configured() {
		log.Printf("CalorieNinjas configured: %s", cfg.CalorieNinjas.BaseURL)
	} else {
		log.Printf("CalorieNinjas key not set; simple flow will skip it")
	}
	if fdcDetailed.Configured() {
		log.Printf("FDC configured: %s", cfg.FDC.BaseURL)
	} else {
		log.Printf("WARNING: FDC key not set; /macros requests will fail")
	}

	// Resolution orchestrators: fallback chain order is fixed,
	// CalorieNinjas first, then the FDC quick path.
	nutritionService := usecase.NewNutritionService(ninjas, fdcQuick)
	macroService := usecase.NewMacroService(fdcDetailed)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(nutritionService, macroService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
