package api

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ethanbaker/api/pkg/api_key"
	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	agent_module "github.com/ethanbaker/repogen/internal/api/modules/agent"
	generation_module "github.com/ethanbaker/repogen/internal/api/modules/generation"
	health_module "github.com/ethanbaker/repogen/internal/api/modules/health"
)

// Services are the backends the routes call into
type Services struct {
	Generator    generation_module.Generator
	Runs         generation_module.Ledger
	Orchestrator agent_module.Orchestrator
}

// NewEngine builds the gin engine with every module registered
func NewEngine(cfg *utils.Config, services Services) (*gin.Engine, error) {
	validator, err := makeApiKeyValidator(cfg)
	if err != nil {
		return nil, err
	}
	auth := api_key.APIKeyHeaderHandler(validator)

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	health_module.RegisterRoutes(baseGroup)
	generation_module.RegisterRoutes(baseGroup, auth, generation_module.NewController(services.Generator, services.Runs))
	agent_module.RegisterRoutes(baseGroup, auth, agent_module.NewController(services.Orchestrator))

	return engine, nil
}

// Start builds the engine and serves on API_PORT
func Start(cfg *utils.Config, services Services) {
	port := cfg.GetWithDefault("API_PORT", "8080")

	engine, err := NewEngine(cfg, services)
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to build server: %v", err)
	}

	log.Printf("[API-MAIN]: Listening on :%s", port)
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// makeApiKeyValidator checks if the provided API key is valid
func makeApiKeyValidator(cfg *utils.Config) (func(key string) bool, error) {
	apiKey := cfg.Get("API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY not set in environment")
	}

	return func(key string) bool {
		return apiKey == key
	}, nil
}
