package main

import (
	"flag"
	"net/http"
	"os"

	"cell-dashboard/internal/api/handlers"
	"cell-dashboard/internal/api/middleware"
	"cell-dashboard/internal/config"
	"cell-dashboard/internal/logger"
	"cell-dashboard/internal/session"
	"cell-dashboard/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	log := logger.New("api")

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("load config")
	}

	// Environment overrides for containerized deploys.
	port := cfg.Server.Port
	if p := os.Getenv("API_PORT"); p != "" {
		port = p
	}
	env := cfg.Server.Env
	if e := os.Getenv("API_ENV"); e != "" {
		env = e
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	factory := sim.NewFactory(nil)
	factory.TempMinC = cfg.Simulation.TempMinC
	factory.TempMaxC = cfg.Simulation.TempMaxC

	store := session.NewStore(cfg.SessionTTL())
	defer store.Close()

	router := gin.New()
	router.Use(middleware.RequestLogger(logger.New("http")))
	router.Use(middleware.ErrorHandler())

	h := handlers.NewCellsHandler(factory, store,
		cfg.Simulation.MaxCells, cfg.Simulation.HistogramBins, logger.New("handlers"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/chemistries", handlers.ListChemistries)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)
		api.PUT("/sessions/:id/cells/:cellId/current", h.SetCurrent)
		api.PUT("/sessions/:id/currents", h.UpdateCurrents)
		api.GET("/sessions/:id/stats", h.GetStats)
		api.GET("/sessions/:id/charts", h.GetCharts)
		api.GET("/sessions/:id/export.csv", h.ExportCSV)
	}

	// Serve the dashboard SPA if a build exists.
	staticDir := cfg.Server.StaticDir
	if s := os.Getenv("STATIC_DIR"); s != "" {
		staticDir = s
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Info().Str("dir", staticDir).Msg("serving static files")
	} else {
		log.Info().Str("dir", staticDir).Msg("static directory not found, skipping")
	}

	// The browser frontend may be served from a different origin in dev.
	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	addr := ":" + port
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
