package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"budget-control/internal/api/handlers"
	"budget-control/internal/api/middleware"
	"budget-control/internal/config"
	"budget-control/internal/data"
	"budget-control/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Invalid server configuration: %v", err)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}

	// Persistence. SQLite carries the registry and run journal; Postgres,
	// when configured, takes over series storage.
	var (
		journal  handlers.Journal
		registry handlers.Registry
		series   handlers.SeriesStore
		source   data.SeriesSource
	)
	if cfg.DBPath != "" {
		db, err := store.NewSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open SQLite store %s: %v", cfg.DBPath, err)
		}
		defer db.Close()
		journal, registry, series = db, db, db
		log.Printf("SQLite store: %s", cfg.DBPath)
	}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pg.EnsureSchema(ctx)
		}
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pg.Close()
		series = pg
		log.Printf("Postgres series store enabled")
	}

	switch {
	case series != nil:
		source = series
	case cfg.SeriesSourceURL != "":
		source = data.NewHTTPSource(cfg.SeriesSourceURL, cfg.SeriesSourceKey)
		log.Printf("Remote series source: %s", cfg.SeriesSourceURL)
	}
	if source != nil && cfg.SeriesCacheTTL > 0 {
		cached := data.NewCachedSource(source, cfg.SeriesCacheTTL)
		defer cached.Close()
		source = cached
	}

	// Set up Gin router
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(cfg.CORSOrigins...))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	forecastHandler := handlers.NewForecastHandler(source)
	inventoryHandler := handlers.NewInventoryHandler()
	productionHandler := handlers.NewProductionHandler(journal)
	investmentHandler := handlers.NewInvestmentHandler(journal)
	treasuryHandler := handlers.NewTreasuryHandler(cfg.ResultCacheTTL, journal)
	defer treasuryHandler.Close()
	seriesHandler := handlers.NewSeriesHandler(series, source)
	integrationHandler := handlers.NewIntegrationHandler(registry)
	runsHandler := handlers.NewRunsHandler(journal)
	scenarioHandler := handlers.NewScenarioHandler(cfg.ScenarioDir)
	catalogHandler := handlers.NewCatalogHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "ok",
			"store":    cfg.DBPath != "",
			"postgres": cfg.DatabaseURL != "",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/calculators", catalogHandler.ListCalculators)

		api.POST("/forecast/trend", forecastHandler.FitTrend)
		api.POST("/forecast/seasonality", forecastHandler.Seasonality)
		api.POST("/forecast/budget", forecastHandler.Budget)

		api.POST("/inventory/eoq", inventoryHandler.EOQ)
		api.POST("/inventory/abc", inventoryHandler.ABC)

		api.POST("/production/mix", productionHandler.Mix)
		api.POST("/production/capacity", productionHandler.Capacity)
		api.POST("/production/schedule", productionHandler.Schedule)

		api.POST("/investment/appraise", investmentHandler.Appraise)
		api.POST("/investment/rank", investmentHandler.Rank)

		api.POST("/treasury/project", treasuryHandler.Project)
		api.GET("/treasury/:id/ledger", treasuryHandler.GetLedger)
		api.GET("/treasury/:id/report", treasuryHandler.GetReport)

		// Keys may contain slashes ("sales/monthly"), hence the catch-all.
		api.GET("/series", seriesHandler.ListSeries)
		api.GET("/series/*key", seriesHandler.GetSeries)
		api.PUT("/series/*key", seriesHandler.PutSeries)
		api.DELETE("/series/*key", seriesHandler.DeleteSeries)

		api.GET("/integrations", integrationHandler.ListConnections)
		api.POST("/integrations", integrationHandler.AddConnection)
		api.PUT("/integrations/:id/status", integrationHandler.SetConnectionStatus)
		api.GET("/dataflows", integrationHandler.ListDataFlows)
		api.POST("/dataflows", integrationHandler.AddDataFlow)

		api.GET("/runs", runsHandler.ListRuns)
		api.GET("/runs/:id", runsHandler.GetRun)

		api.GET("/scenarios", scenarioHandler.ListScenarios)
		api.GET("/scenarios/:id", scenarioHandler.GetScenario)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := cfg.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(staticDir + "/index.html")
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
