package main

import (
	"fmt"
	"log"
	"os"

	"grid-backtest/internal/api/handlers"
	"grid-backtest/internal/api/middleware"
	"grid-backtest/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; silence is fine when absent.
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// One data client shared by handlers; the simulation core itself is
	// constructed per request.
	dataClient := data.NewHistoricalClient(os.Getenv("MARKETDATA_URL"))

	backtestHandler := handlers.NewBacktestHandler(dataClient)
	marketDataHandler := handlers.NewMarketDataHandler(dataClient)
	realtimeHandler := handlers.NewRealtimeHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/detailed", backtestHandler.RunBacktestDetailed)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)

		api.GET("/historical", marketDataHandler.GetHistorical)
		api.POST("/chart/minute", marketDataHandler.MinuteChart)

		api.GET("/realtime", realtimeHandler.GetRealtime)
		api.GET("/realtime/ws", realtimeHandler.StreamRealtime)

		api.GET("/tickers", handlers.ListTickers)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
